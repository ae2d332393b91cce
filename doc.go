// Package storyglyph renders scrolling, branching dialogue text onto a GPU
// surface: the text panel of a visual novel or narrative game.
//
// # Overview
//
// The package owns everything between a list of dialogue entries and a
// flat vertex stream: glyph atlas construction (atlas/), UTF-8 decoding
// (codepoint/), greedy word-wrap layout with speaker labels, an eased
// auto-scroll state machine, choice hit-testing, and per-frame vertex
// generation. Rendering backends implement the small contract in gpucore/;
// a wgpu implementation lives in backend/native and a CPU compositor in
// backend/.
//
// # Usage
//
//	r, err := storyglyph.NewRenderer(fontData, 1920, 1080)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	r.AddHistoryEntry(storyglyph.Entry{
//	    Kind:         storyglyph.KindDialogue,
//	    Speaker:      "Mira",
//	    SpeakerColor: storyglyph.RGB(0.9, 0.6, 0.3),
//	    Text:         "You came back.",
//	})
//	r.AddChoiceEntry("Stay silent.", false)
//
//	// Per frame:
//	r.UpdateMousePosition(mx, my)
//	r.Rebuild(dt)
//	err = r.Draw(pass)
//
// The host application owns the window, the event loop, and the GPU
// surface; the renderer only fills a render pass (or an image, with the
// software backend).
package storyglyph
