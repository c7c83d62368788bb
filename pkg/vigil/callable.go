// callable.go models the two supported hook shapes behind one calling
// convention.

package vigil

import (
	"fmt"
	"reflect"
)

// Callable is a user-supplied hook in one of two shapes: a bare function
// (F) or a receiver paired with an exported method name (Bound). The zero
// Callable is "absent" and behaves as the identity hook.
//
// Shapes are validated once, when the option carrying them is applied,
// not on every invocation.
type Callable struct {
	fn     any
	recv   any
	method string
}

// F wraps a bare function as a Callable.
func F(fn any) Callable {
	return Callable{fn: fn}
}

// Bound wraps a receiver and method name as a Callable. The method is
// resolved on recv's type, so pointer receivers require a pointer value.
func Bound(recv any, method string) Callable {
	return Callable{recv: recv, method: method}
}

func (c Callable) isZero() bool {
	return c.fn == nil && c.recv == nil
}

// describe names the callable for error messages.
func (c Callable) describe() string {
	if c.fn != nil {
		return fmt.Sprintf("function %T", c.fn)
	}
	return fmt.Sprintf("method %q of %T", c.method, c.recv)
}

// resolve returns the underlying function value.
func (c Callable) resolve() (reflect.Value, error) {
	if c.fn != nil {
		v := reflect.ValueOf(c.fn)
		if v.Kind() != reflect.Func {
			return reflect.Value{}, fmt.Errorf("%s is not a function", c.describe())
		}
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%s is nil", c.describe())
		}
		return v, nil
	}
	if c.recv == nil || c.method == "" {
		return reflect.Value{}, fmt.Errorf("bound callable needs a receiver and a method name")
	}
	m := reflect.ValueOf(c.recv).MethodByName(c.method)
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("%T has no method %q", c.recv, c.method)
	}
	return m, nil
}

// validate checks that the callable exists and accepts exactly arity
// arguments. A zero Callable is valid (identity behavior).
func (c Callable) validate(arity int) error {
	if c.isZero() {
		return nil
	}
	v, err := c.resolve()
	if err != nil {
		return err
	}
	t := v.Type()
	if t.IsVariadic() || t.NumIn() != arity {
		return fmt.Errorf("%s must accept exactly %d argument(s), has %d", c.describe(), arity, t.NumIn())
	}
	return nil
}

// invoke calls the callable with args and returns its first result, or
// nil when it returns nothing. The shape must have been validated; a
// shape mismatch here is a programmer error and panics.
func (c Callable) invoke(args ...any) any {
	v, err := c.resolve()
	if err != nil {
		panic(&ConfigurationError{Reason: err.Error()})
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}
	out := v.Call(in)
	if len(out) == 0 {
		return nil
	}
	return out[0].Interface()
}
