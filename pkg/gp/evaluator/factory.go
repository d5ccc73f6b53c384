package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	vitaerrors "github.com/klauern/vita-go/internal/errors"
	"github.com/klauern/vita-go/pkg/gp/dataset"
	"github.com/klauern/vita-go/pkg/gp/fingerprint"
	"github.com/klauern/vita-go/pkg/gp/interpreter"
)

// New builds the Evaluator named by spec (one of the `--evaluator` CLI
// tokens from spec.md §6: count|mae|rmae|mse|binary|dynslot|gaussian),
// optionally carrying a `:arg` suffix (dynslot's slot count, binary's
// target label).
func New(spec string, d dataset.Dataset, interp *interpreter.Interpreter, cache *fingerprint.Cache) (Evaluator, error) {
	name, arg, _ := strings.Cut(spec, ":")
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case "mae":
		return NewMAE(d, interp, cache), nil
	case "mse":
		return NewMSE(d, interp, cache), nil
	case "rmae":
		return NewRMAE(d, interp, cache), nil
	case "count":
		return NewCount(d, interp, cache), nil
	case "dynslot":
		xSlot := 10
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid dynslot argument %q: %w", arg, err)
			}
			xSlot = n
		}
		return NewDynSlot(d, interp, cache, xSlot), nil
	case "gaussian":
		return NewGaussian(d, interp, cache), nil
	case "binary":
		label := 1
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid binary label argument %q: %w", arg, err)
			}
			label = n
		}
		return NewBinary(d, interp, cache, label), nil
	default:
		return nil, vitaerrors.New(vitaerrors.CodeUnknownEvaluator, fmt.Sprintf("unknown evaluator %q", name))
	}
}
