// Package assets provides the page template, stylesheet and script served to
// the viewer.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the viewer. A custom directory may
// override any single asset; everything else keeps the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/{name}.css
//	├── scripts/{name}.js
//	└── templates/{name}.html
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
