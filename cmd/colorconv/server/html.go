package server

import (
	"bytes"
	"fmt"
	"html/template"
)

type pageIDs struct {
	HexGo      string
	HexPreview string
	RGBGo      string
	RGBPreview string
	DelayMS    int64
}

// renderPage executes the page template for cfg once; the result is served
// verbatim for every request.
func renderPage(cfg Config) ([]byte, error) {
	ids := pageIDs{
		HexGo:      "hexGo",
		HexPreview: "hexPreview",
		RGBGo:      "rgbGo",
		RGBPreview: "rgbPreview",
		DelayMS:    cfg.RenderDelay.Milliseconds(),
	}
	if cfg.LegacyIDs {
		ids.HexGo, ids.RGBGo = "", ""
		ids.HexPreview, ids.RGBPreview = "hexSwatch", "rgbSwatch"
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, ids); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}

// The two sections are direct children of body, each with a single button,
// so /html/body/section[N]/button addresses the triggers in either markup.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>HEX ⇄ RGB Converter</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            max-width: 800px;
            margin: 40px auto;
            padding: 20px;
            background: #f5f5f5;
        }
        section {
            background: white;
            padding: 24px;
            margin-bottom: 24px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        h1 { color: #333; }
        input { font-size: 16px; padding: 6px; width: 120px; margin-right: 8px; }
        button {
            background: #4285f4;
            color: white;
            border: none;
            padding: 8px 20px;
            border-radius: 4px;
            cursor: pointer;
            font-size: 16px;
        }
        button:hover { background: #3367d6; }
        .row { display: flex; gap: 16px; align-items: flex-start; margin-top: 16px; }
        .preview { width: 96px; height: 96px; border: 1px solid #ccc; border-radius: 4px; }
        pre {
            flex: 1;
            background: #1e1e1e;
            color: #d4d4d4;
            padding: 12px;
            border-radius: 4px;
            min-height: 96px;
            margin: 0;
        }
    </style>
</head>
<body>
    <h1>HEX ⇄ RGB Converter</h1>
    <section class="hex">
        <h2>HEX → RGB</h2>
        <input id="hex" type="text" placeholder="#FF5733">
        <button{{if .HexGo}} id="{{.HexGo}}"{{end}} type="button">Convert</button>
        <div class="row">
            <div id="{{.HexPreview}}" class="preview"></div>
            <pre id="hexOut"></pre>
        </div>
    </section>
    <section class="rgb">
        <h2>RGB → HEX</h2>
        <input id="r" type="number" placeholder="R">
        <input id="g" type="number" placeholder="G">
        <input id="b" type="number" placeholder="B">
        <button{{if .RGBGo}} id="{{.RGBGo}}"{{end}} type="button">Convert</button>
        <div class="row">
            <div id="{{.RGBPreview}}" class="preview"></div>
            <pre id="rgbOut"></pre>
        </div>
    </section>
    <script>
        const renderDelay = {{.DelayMS}};

        async function convert(path, body, out, preview) {
            out.textContent = 'Working...';
            let payload;
            try {
                const res = await fetch(path, {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify(body)
                });
                payload = await res.json();
            } catch (err) {
                payload = { success: false, error: 'Request failed', message: String(err) };
            }
            setTimeout(() => {
                out.textContent = JSON.stringify(payload, null, 2);
                if (payload.success && payload.data) {
                    preview.style.backgroundColor = payload.data.hex;
                }
            }, renderDelay);
        }

        const $ = (id) => document.getElementById(id);

        document.querySelector('section.hex button').addEventListener('click', () => {
            convert('/api/convert/hex-to-rgb', { hex: $('hex').value }, $('hexOut'), $({{.HexPreview}}));
        });
        document.querySelector('section.rgb button').addEventListener('click', () => {
            convert('/api/convert/rgb-to-hex',
                { r: $('r').value, g: $('g').value, b: $('b').value },
                $('rgbOut'), $({{.RGBPreview}}));
        });
    </script>
</body>
</html>
`))
