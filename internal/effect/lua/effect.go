package lua

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/designer"
)

// Effect returns a designer effect that runs the Lua file at path.
func Effect(path string, opts ...StateOption) designer.Effect {
	return func(d *designer.Designer) error {
		return run(d, filepath.Base(path), opts, func(s *State) error {
			return s.DoFile(path)
		})
	}
}

// EffectString returns a designer effect that runs code. The name labels
// the script in logs and errors.
func EffectString(name, code string, opts ...StateOption) designer.Effect {
	return func(d *designer.Designer) error {
		return run(d, name, opts, func(s *State) error {
			return s.DoString(code)
		})
	}
}

func run(d *designer.Designer, name string, opts []StateOption, exec func(*State) error) error {
	state := NewState(opts...)
	a := newAPI(d, state, name)
	a.install()

	if err := exec(state); err != nil {
		a.release()
		state.Close()
		return fmt.Errorf("lua effect %s: %w", name, err)
	}

	d.OnClose(func() {
		a.release()
		state.Close()
	})
	a.logger.Debug("lua effect loaded", zap.Int("subscriptions", len(a.disposers)))
	return nil
}
