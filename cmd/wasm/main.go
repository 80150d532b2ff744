//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/himanishpuri/ChordsOfSongs/pkg/chords"
)

// Error codes returned to JavaScript
const (
	ErrorNone = iota
	ErrorInvalidArgs
)

// Transposes a single chord symbol from one key to another. Keys that are
// not recognized are read as C.
// Returns: {error: number, data: string}
func transposeChord(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 3 arguments: chord, fromKey, toKey")
	}
	for i, name := range []string{"chord", "fromKey", "toKey"} {
		if args[i].Type() != js.TypeString {
			return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("%s must be a string", name))
		}
	}

	t := chords.NewTransposition(args[1].String(), args[2].String())

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", t.Chord(args[0].String()))
	return result
}

// Renders annotated song content into chord and lyric line pairs.
// Returns: {error: number, data: {key, sourceKey, interval, columns} | string}
func renderSong(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 3-4 arguments: content, sourceKey, targetKey, [columns]")
	}
	for i, name := range []string{"content", "sourceKey", "targetKey"} {
		if args[i].Type() != js.TypeString {
			return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("%s must be a string", name))
		}
	}

	columns := 1
	if len(args) > 3 && !args[3].IsUndefined() {
		if args[3].Type() != js.TypeNumber {
			return makeErrorResponse(ErrorInvalidArgs, "columns must be a number")
		}
		columns = args[3].Int()
		if columns < 1 || columns > 2 {
			return makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Columns must be 1 or 2, got: %d", columns))
		}
	}

	sheet := chords.RenderSong(args[0].String(), args[1].String(), args[2].String(), columns)

	cols := js.Global().Get("Array").New()
	for i, col := range sheet.Columns {
		lines := js.Global().Get("Array").New()
		for j, line := range col {
			lineObj := js.Global().Get("Object").New()
			lineObj.Set("chords", line.Chords)
			lineObj.Set("lyrics", line.Lyrics)
			lineObj.Set("hasChords", line.HasChords)
			lines.SetIndex(j, lineObj)
		}
		cols.SetIndex(i, lines)
	}

	data := js.Global().Get("Object").New()
	data.Set("key", sheet.Key)
	data.Set("sourceKey", sheet.SourceKey)
	data.Set("interval", sheet.Interval)
	data.Set("columns", cols)

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", data)
	return result
}

// Lists the key selector entries, marking the optional current key.
// Returns: {error: number, data: array}
func selectableKeys(this js.Value, args []js.Value) interface{} {
	current := ""
	if len(args) > 0 && args[0].Type() == js.TypeString {
		current = args[0].String()
	}

	keys := js.Global().Get("Array").New()
	for i, opt := range chords.KeyOptions(current) {
		keyObj := js.Global().Get("Object").New()
		keyObj.Set("name", opt.Name)
		keyObj.Set("active", opt.Active)
		keys.SetIndex(i, keyObj)
	}

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", keys)
	return result
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")
	if !console.IsUndefined() {
		console.Call("log", "🎸 ChordsOfSongs WASM module initializing...")
	}

	done := make(chan struct{})

	js.Global().Set("transposeChord", js.FuncOf(transposeChord))
	js.Global().Set("renderSong", js.FuncOf(renderSong))
	js.Global().Set("selectableKeys", js.FuncOf(selectableKeys))

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
	} else if !console.IsUndefined() {
		console.Call("error", "❌ window object is undefined!")
	}

	if !console.IsUndefined() {
		console.Call("log", "✅ ChordsOfSongs WASM module loaded and ready")
	}

	<-done
}
