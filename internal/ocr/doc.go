// Package ocr runs the template-matching recognition pipeline end to end.
//
// An Engine ties together the stages from the lower-level packages:
//
//  1. imaging.Binarizer turns the page into a foreground-high stroke mask
//  2. detection.Segmenter splits the mask into glyph crops in reading order
//  3. classify.Classifier normalizes each crop, scores it against the
//     templates.Library and assembles the text with inferred spaces
//
// The engine only reads a single line of machine-printed text in the fonts
// the template corpus was cut from. There is no skew correction, line
// detection or trained model.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	engine, err := ocr.LoadEngine(cfg)
//	if err != nil {
//	    return err
//	}
//	result, err := engine.RecognizeFile("line.png")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result) // "No text detected" when nothing matched
//
// # Error Handling
//
// Only input loading fails a run: a missing or undecodable file returns an
// *imaging.LoadError (matching imaging.ErrImageLoad) and no partial text.
// Low-confidence glyphs and an empty template library just produce less
// text.
package ocr
