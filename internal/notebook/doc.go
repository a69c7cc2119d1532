// Package notebook parses Jupyter notebooks and renders them to HTML.
//
// Markdown cells go through the annotated Markdown renderer and contribute
// to the table of contents. Code cells show their input and outputs; raw
// cells are shown verbatim. Text outputs longer than paginate.Threshold lines
// are rendered as head and tail with a reveal control, and their state is
// returned to the caller for later reveal requests.
//
// Notebooks can also be converted to plain Markdown with ToMarkdown.
package notebook
