package interp

import (
	"time"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// installDateBuiltins wires a minimal Date (spec.md §3.5's "host clock
// access, not a full calendar library"): construction from
// milliseconds-since-epoch or the current time, plus the getters a guest
// script needs to read it back out. Internally a Date's Data slot holds
// the Go time.Time the constructor resolved.
func (i *Interpreter) installDateBuiltins() {
	proto := i.dateProto
	getters := map[string]func(time.Time) float64{
		"getFullYear":   func(t time.Time) float64 { return float64(t.Year()) },
		"getMonth":      func(t time.Time) float64 { return float64(int(t.Month()) - 1) },
		"getDate":       func(t time.Time) float64 { return float64(t.Day()) },
		"getHours":      func(t time.Time) float64 { return float64(t.Hour()) },
		"getMinutes":    func(t time.Time) float64 { return float64(t.Minute()) },
		"getSeconds":    func(t time.Time) float64 { return float64(t.Second()) },
		"getMilliseconds": func(t time.Time) float64 { return float64(t.Nanosecond() / 1e6) },
		"getDay":        func(t time.Time) float64 { return float64(int(t.Weekday())) },
		"getTime":       func(t time.Time) float64 { return float64(t.UnixNano()) / 1e6 },
	}
	for name, fn := range getters {
		fn := fn
		proto.SetOwnData(name, i.nativeFn(name, 0, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
			t, ok := dateTime(this)
			if !ok {
				return nil, ctx.Throw("TypeError", "this is not a Date")
			}
			return object.Number(fn(t)), nil
		}), object.Attrs{Writable: true, Configurable: true})
	}
	proto.SetOwnData("toISOString", i.nativeFn("toISOString", 0, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		t, ok := dateTime(this)
		if !ok {
			return nil, ctx.Throw("TypeError", "this is not a Date")
		}
		return object.String(t.UTC().Format("2006-01-02T15:04:05.000Z")), nil
	}), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("toString", i.nativeFn("toString", 0, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		t, ok := dateTime(this)
		if !ok {
			return object.String("Invalid Date"), nil
		}
		return object.String(t.Format(time.RFC1123)), nil
	}), object.Attrs{Writable: true, Configurable: true})

	ctor := i.nativeConstructor("Date", 0, proto, i.dateConstructorBody)
	ctor.SetOwnData("now", i.nativeFn("now", 0, func(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
		return object.Number(float64(time.Now().UnixNano()) / 1e6), nil
	}), object.DefaultAttrs)
	i.globalObj.SetOwnData("Date", ctor, object.DefaultAttrs)
}

func dateTime(v object.Value) (time.Time, bool) {
	obj, ok := v.(*object.Object)
	if !ok {
		return time.Time{}, false
	}
	t, ok := obj.Data.(time.Time)
	return t, ok
}

func (i *Interpreter) dateConstructorBody(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, ok := this.(*object.Object)
	if !ok || obj.Class != "Date" {
		obj = i.NewObject("Date", i.dateProto)
	}
	switch len(args) {
	case 0:
		obj.Data = time.Now()
	case 1:
		if s, ok := args[0].(object.String); ok {
			t, err := time.Parse(time.RFC3339, string(s))
			if err != nil {
				obj.Data = time.Time{}
			} else {
				obj.Data = t
			}
		} else {
			ms := object.ToNumber(args[0])
			obj.Data = time.Unix(0, int64(ms)*int64(time.Millisecond)).UTC()
		}
	default:
		get := func(idx int, def int) int {
			if idx < len(args) {
				return int(object.ToNumber(args[idx]))
			}
			return def
		}
		year := get(0, 1970)
		month := get(1, 0)
		day := get(2, 1)
		hour := get(3, 0)
		min := get(4, 0)
		sec := get(5, 0)
		ms := get(6, 0)
		obj.Data = time.Date(year, time.Month(month+1), day, hour, min, sec, ms*1e6, time.UTC)
	}
	return obj, nil
}
