package state

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hslc/color"
	"hslc/colorspace"
	"hslc/css"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:     time.Now(),
		SessionID: uuid.NewString(),
	}
}

// PrepareEngine creates parser, converter and formatter according to loaded
// configuration. Configuration and logger must be set already. Conversion
// warnings are recorded in debug report when one is requested.
func (e *LocalEnv) PrepareEngine(opts ...colorspace.Option) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	var options []colorspace.Option
	if e.Cfg != nil {
		options = append(options,
			colorspace.WithTolerance(e.Cfg.Conversion.Tolerance),
			colorspace.WithMaxIterations(e.Cfg.Conversion.MaxIterations),
			colorspace.WithWorkers(e.Cfg.Conversion.Workers),
		)
	}
	if e.Rpt != nil {
		rpt := e.Rpt
		options = append(options, colorspace.WithWarningHandler(func(w colorspace.Warning) {
			rpt.Record("warning", w.String())
		}))
	}

	e.Parser = css.NewParser(log)
	e.Converter = colorspace.NewConverter(log, append(options, opts...)...)
	e.Formatter = color.NewFormatter(e.Converter)
}
