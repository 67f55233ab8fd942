package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/thesyncim/colorcheck/pkg/color"
)

const (
	errMissingHex = "Missing hex parameter"
	errInvalidHex = "Invalid hex color code"
	errInvalidRGB = "Invalid RGB values"

	msgInvalidHex = "Please provide a valid hex color code (e.g., FFFFFF or #FFFFFF)"
	msgInvalidRGB = "Provide r,g,b integers between 0 and 255"
)

type conversion struct {
	Hex string    `json:"hex"`
	RGB color.RGB `json:"rgb"`
	CSS string    `json:"css"`
}

type response struct {
	Success bool        `json:"success"`
	Data    *conversion `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, errText, message string) {
	writeJSON(w, status, response{Error: errText, Message: message})
}

// handleHexToRGB converts ?hex= (GET) or a body "hex" field (POST).
func handleHexToRGB(w http.ResponseWriter, r *http.Request) {
	fields, where, err := params(r, "hex")
	if err != nil {
		writeError(w, http.StatusBadRequest, errMissingHex, "Request body is not valid JSON")
		return
	}
	hex := fields["hex"]
	if hex == "" {
		writeError(w, http.StatusBadRequest, errMissingHex, "Please provide a hex color code in the "+where)
		return
	}

	rgb, err := color.ParseHex(hex)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidHex, msgInvalidHex)
		return
	}
	normalized, err := color.NormalizeHex(hex)
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidHex, msgInvalidHex)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data:    &conversion{Hex: normalized, RGB: rgb, CSS: rgb.CSS()},
	})
}

// handleRGBToHex converts ?r=&g=&b= (GET) or body r, g, b fields (POST).
// Channels may be JSON numbers or strings.
func handleRGBToHex(w http.ResponseWriter, r *http.Request) {
	fields, _, err := params(r, "r", "g", "b")
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidRGB, msgInvalidRGB)
		return
	}
	rgb, err := color.ParseRGB(fields["r"], fields["g"], fields["b"])
	if err != nil {
		writeError(w, http.StatusBadRequest, errInvalidRGB, msgInvalidRGB)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data:    &conversion{Hex: rgb.Hex(), RGB: rgb, CSS: rgb.CSS()},
	})
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "HEX to RGB Conversion API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"GET /api/convert/hex-to-rgb":  "Convert HEX to RGB (query param)",
			"POST /api/convert/hex-to-rgb": "Convert HEX to RGB (body param)",
			"GET /api/convert/rgb-to-hex":  "Convert RGB to HEX (query params)",
			"POST /api/convert/rgb-to-hex": "Convert RGB to HEX (body params)",
		},
	})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found", "")
}

// params extracts the named fields from the query string (GET) or from a
// JSON or form body (POST). where names the source for error messages.
func params(r *http.Request, names ...string) (map[string]string, string, error) {
	out := make(map[string]string, len(names))
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		for _, n := range names {
			out[n] = q.Get(n)
		}
		return out, "query string", nil
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, "request body", err
		}
		for _, n := range names {
			out[n] = r.PostForm.Get(n)
		}
		return out, "request body", nil
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, "request body", err
	}
	for _, n := range names {
		out[n] = scalar(body[n])
	}
	return out, "request body", nil
}

// scalar renders a JSON string or number as text. Anything else is empty.
func scalar(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}
	return ""
}
