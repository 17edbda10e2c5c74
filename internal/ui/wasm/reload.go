//go:build js && wasm

package wasm

import (
	"strconv"
	"syscall/js"

	"go.uber.org/zap"
)

var (
	reloadSource js.Value
	reloadFuncs  []js.Func
)

// watchReload subscribes to the dev server's reload stream. A "change" event reloads
// the page, as does reconnecting to a server whose version moved while the stream was
// down.
func watchReload(path string, log *zap.Logger) {
	window := js.Global()
	ctor := window.Get("EventSource")
	if ctor.Type() == js.TypeUndefined || !ctor.Truthy() {
		log.Debug("reload stream unsupported")
		return
	}
	cleanupReload()

	source := ctor.New(path)
	reloadSource = source
	seen := int64(-1)

	reloadPage := func(reason string) {
		log.Info("reloading", zap.String("reason", reason))
		cleanupReload()
		window.Get("location").Call("reload")
	}

	readyHandler := js.FuncOf(func(this js.Value, args []js.Value) any {
		version := eventVersion(args)
		if seen >= 0 && version != seen {
			reloadPage("version changed while disconnected")
			return nil
		}
		seen = version
		log.Debug("reload stream connected", zap.String("path", path), zap.Int64("version", version))
		return nil
	})
	changeHandler := js.FuncOf(func(this js.Value, args []js.Value) any {
		reloadPage("site changed")
		return nil
	})
	errorHandler := js.FuncOf(func(this js.Value, args []js.Value) any {
		// EventSource reconnects on its own; ready fires again once it does.
		log.Debug("reload stream error", zap.String("path", path))
		return nil
	})

	reloadFuncs = append(reloadFuncs, readyHandler, changeHandler, errorHandler)
	source.Call("addEventListener", "ready", readyHandler)
	source.Call("addEventListener", "change", changeHandler)
	source.Call("addEventListener", "error", errorHandler)
}

func eventVersion(args []js.Value) int64 {
	if len(args) == 0 {
		return 0
	}
	data := args[0].Get("data")
	if data.Type() != js.TypeString {
		return 0
	}
	v, err := strconv.ParseInt(data.String(), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func cleanupReload() {
	if reloadSource.Truthy() {
		reloadSource.Call("close")
	}
	for _, fn := range reloadFuncs {
		fn.Release()
	}
	reloadFuncs = nil
	reloadSource = js.Value{}
}
