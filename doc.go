// Package cardfmt formats trading-card ability text.
//
// Ability text is plain text with a small inline markup:
//
//	*text*      bold
//	$text$      italic at 80% opacity
//	^text^      circular cost badge
//	%keyword%   registered keyword, case-insensitive
//
// Each line is scanned with a single alternation of every registered keyword
// and the three delimiter patterns. Matches are taken left to right and their
// interiors are never re-scanned, so spans do not nest and there is no escape
// character. Unbalanced delimiters and unknown %words% stay literal text;
// Validate reports the unbalanced ones for an editor to display.
//
// Parse turns text into backend-neutral fragments (text, style, keyword
// shape geometry). Keywords live in a Registry; the package-level functions
// use a process-wide default registry.
//
// Example:
//
//	reg := cardfmt.NewRegistry()
//	reg.AddCustomKeyword("%test%", cardfmt.KeywordSpec{
//		DisplayText:     "TEST",
//		BackgroundColor: "#000",
//		Color:           "#fff",
//	})
//	lines := cardfmt.Parse("%test%: pay ^2^ to draw *two* cards.",
//		cardfmt.BaseStyle{FontSize: 14},
//		cardfmt.WithRegistry(reg),
//		cardfmt.WithExport(true),
//	)
//	if err := cardfmt.RenderTerminal(cardfmt.TerminalRequest{
//		Writer: os.Stdout,
//		Lines:  lines,
//		Width:  60,
//	}); err != nil {
//		log.Fatal(err)
//	}
package cardfmt
