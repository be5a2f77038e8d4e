package tracing

import (
	"maps"
)

type terminatorKind int

const (
	terminatorInvalid terminatorKind = iota

	// terminatorExit stops the process unconditionally.
	terminatorExit

	// terminatorPanic panics and counts as termination only when panics are configured to.
	terminatorPanic
)

// Some funcs are known for stopping the whole program. Calling them from a function
// returning a result breaks the promise to hand the error back to the caller.
//
// Keys are qualified names: "pkg/path.Func" or "pkg/path.Type.Method".
type knownTerminators struct {
	known map[string]terminatorKind
}

func newKnownTerminators(custom []Reference) *knownTerminators {
	predefined := map[string]terminatorKind{
		// Stdlib.
		"os.Exit":            terminatorExit,
		"log.Fatal":          terminatorExit,
		"log.Fatalf":         terminatorExit,
		"log.Fatalln":        terminatorExit,
		"log.Panic":          terminatorPanic,
		"log.Panicf":         terminatorPanic,
		"log.Panicln":        terminatorPanic,
		"log.Logger.Fatal":   terminatorExit,
		"log.Logger.Fatalf":  terminatorExit,
		"log.Logger.Fatalln": terminatorExit,
		"log.Logger.Panic":   terminatorPanic,
		"log.Logger.Panicf":  terminatorPanic,
		"log.Logger.Panicln": terminatorPanic,

		// Zap.
		"go.uber.org/zap.Logger.Fatal":          terminatorExit,
		"go.uber.org/zap.Logger.Panic":          terminatorPanic,
		"go.uber.org/zap.Logger.DPanic":         terminatorPanic,
		"go.uber.org/zap.SugaredLogger.Fatal":   terminatorExit,
		"go.uber.org/zap.SugaredLogger.Fatalf":  terminatorExit,
		"go.uber.org/zap.SugaredLogger.Fatalw":  terminatorExit,
		"go.uber.org/zap.SugaredLogger.Fatalln": terminatorExit,
		"go.uber.org/zap.SugaredLogger.Panic":   terminatorPanic,
		"go.uber.org/zap.SugaredLogger.Panicf":  terminatorPanic,
		"go.uber.org/zap.SugaredLogger.Panicw":  terminatorPanic,

		// My bias again!
		"github.com/sirkon/message.Fatal":     terminatorExit,
		"github.com/sirkon/message.Fatalf":    terminatorExit,
		"github.com/sirkon/message.Critical":  terminatorExit,
		"github.com/sirkon/message.Criticalf": terminatorExit,
	}

	known := make(map[string]terminatorKind, len(predefined)+len(custom))
	for _, ref := range custom {
		known[ref.qualified()] = terminatorExit
	}
	maps.Insert(known, maps.All(predefined))

	return &knownTerminators{
		known: known,
	}
}

func (k *knownTerminators) lookup(qualified string) (terminatorKind, bool) {
	v, ok := k.known[qualified]
	if !ok || v == terminatorInvalid {
		return terminatorInvalid, false
	}

	return v, true
}
