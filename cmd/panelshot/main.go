// Command panelshot renders a dialogue script to a PNG through the
// software backend. It exists for theme work and debugging: no window, no
// GPU, just the exact vertex stream a game would draw.
//
// Script format, one entry per line:
//
//	Mira: You came back.        dialogue with speaker label
//	The door creaks open.       narration
//	* Stay silent.              choice
//	> Leave.                    choice already taken
//
// Usage:
//
//	panelshot --font fonts/Regular.ttf --script scene.txt --out panel.png
package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/storyglyph/storyglyph"
	"github.com/storyglyph/storyglyph/backend"
)

var speakerPalette = []storyglyph.Color{
	storyglyph.RGB(0.90, 0.60, 0.30),
	storyglyph.RGB(0.45, 0.70, 0.90),
	storyglyph.RGB(0.65, 0.85, 0.50),
	storyglyph.RGB(0.85, 0.50, 0.70),
}

func main() {
	var (
		fontPath   = pflag.String("font", "", "path to a TTF/OTF font (required)")
		scriptPath = pflag.String("script", "", "dialogue script to render (default: builtin sample)")
		themePath  = pflag.String("theme", "", "TOML theme file")
		outPath    = pflag.String("out", "panel.png", "output PNG path")
		width      = pflag.Int("width", 1280, "viewport width in pixels")
		height     = pflag.Int("height", 720, "viewport height in pixels")
		frames     = pflag.Int("frames", 180, "frames to tick before the shot (lets auto-scroll settle)")
		verbose    = pflag.BoolP("verbose", "v", false, "log to stderr")
	)
	pflag.Parse()

	if *verbose {
		storyglyph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*fontPath, *scriptPath, *themePath, *outPath, *width, *height, *frames); err != nil {
		fmt.Fprintln(os.Stderr, "panelshot:", err)
		os.Exit(1)
	}
}

func run(fontPath, scriptPath, themePath, outPath string, width, height, frames int) error {
	if fontPath == "" {
		return fmt.Errorf("--font is required")
	}
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return err
	}

	style := storyglyph.DefaultStyle()
	if themePath != "" {
		if style, err = storyglyph.LoadTheme(themePath); err != nil {
			return err
		}
	}
	if style.Background.A == 0 {
		// A screenshot without the game behind it needs its own panel fill.
		style.Background = storyglyph.RGBA(0.08, 0.08, 0.10, 0.95)
	}

	r, err := storyglyph.NewRenderer(fontData, width, height,
		storyglyph.WithBackend(backend.Get(backend.Software)),
		storyglyph.WithStyle(style))
	if err != nil {
		return err
	}
	defer r.Close()

	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := feedScript(r, f); err != nil {
			return err
		}
	} else {
		feedSample(r)
	}

	for i := 0; i < frames; i++ {
		r.Rebuild(1.0 / 60)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := r.Draw(img); err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d entries, %d vertices)\n",
		outPath, r.HistoryCount()+r.ChoiceCount(), r.VertexCount())
	return nil
}

// feedScript parses the line-oriented script format into renderer entries.
func feedScript(r *storyglyph.Renderer, src *os.File) error {
	colors := map[string]storyglyph.Color{}
	sc := bufio.NewScanner(src)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t")
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "* "):
			r.AddChoiceEntry(strings.TrimPrefix(line, "* "), false)
		case strings.HasPrefix(line, "> "):
			r.AddChoiceEntry(strings.TrimPrefix(line, "> "), true)
		default:
			speaker, text, ok := strings.Cut(line, ": ")
			if ok && speaker != "" && !strings.Contains(speaker, " ") {
				c, seen := colors[speaker]
				if !seen {
					c = speakerPalette[len(colors)%len(speakerPalette)]
					colors[speaker] = c
				}
				r.AddHistoryEntry(storyglyph.Entry{
					Kind:         storyglyph.KindDialogue,
					Speaker:      speaker,
					SpeakerColor: c,
					Text:         text,
				})
			} else {
				r.AddHistoryEntry(storyglyph.Entry{
					Kind: storyglyph.KindNarration,
					Text: line,
				})
			}
		}
	}
	return sc.Err()
}

func feedSample(r *storyglyph.Renderer) {
	mira := speakerPalette[0]
	r.AddHistoryEntry(storyglyph.Entry{
		Kind: storyglyph.KindNarration,
		Text: "The lighthouse door is open. Salt wind has scattered the charts across the floor.",
	})
	r.AddHistoryEntry(storyglyph.Entry{
		Kind: storyglyph.KindDialogue, Speaker: "Mira", SpeakerColor: mira,
		Text: "You came back. I did not think the road would let you.",
	})
	r.AddHistoryEntry(storyglyph.Entry{
		Kind: storyglyph.KindDialogue, Speaker: "Mira", SpeakerColor: mira,
		Text: "Well? Say something.",
	})
	r.AddChoiceEntry("Stay silent.", false)
	r.AddChoiceEntry("“The lamp went dark. Everyone saw it.”", false)
	r.AddChoiceEntry("Ask about the scattered charts.", false)
}
