// Package render formats bands, albums, search results and lyrics for
// output.
//
// Two formats are supported: plain text for terminals and indented JSON for
// scripting. The format is fixed when the Renderer is created, so command
// code renders without caring which one is active:
//
//	r := render.NewRenderer(render.ParseFormat(settings.OutputFormat))
//	fmt.Print(r.Album(full))
package render
