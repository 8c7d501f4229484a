package settings

import (
	"math"

	"github.com/KirkDiggler/simui-api/internal/errors"
)

// Coerce converts raw into the canonical Go type of kind. It accepts the
// shapes produced by encoding/json, yaml.v3 and structpb (float64, int,
// []any) besides the canonical types themselves.
func Coerce(kind Kind, raw any) (any, error) {
	switch kind {
	case KindBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
		return nil, errors.InvalidArgumentf("expected bool, got %T", raw)
	case KindEnum:
		return coerceEnum(raw)
	case KindNumber:
		return coerceNumber(raw)
	case KindSet:
		return coerceSet(raw)
	default:
		return nil, errors.InvalidArgumentf("unknown kind %s", kind)
	}
}

func coerceEnum(raw any) (int32, error) {
	n, err := coerceNumber(raw)
	if err != nil {
		return 0, errors.InvalidArgumentf("expected enum value, got %T", raw)
	}
	if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errors.InvalidArgumentf("enum value %g is not a 32-bit integer", n)
	}
	return int32(n), nil
}

func coerceNumber(raw any) (float64, error) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint32:
		n = float64(v)
	default:
		return 0, errors.InvalidArgumentf("expected number, got %T", raw)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errors.InvalidArgumentf("number %g is not finite", n)
	}
	return n, nil
}

func coerceSet(raw any) (Set, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case Set:
		return NewSet(v...), nil
	case []int32:
		return NewSet(v...), nil
	case []int:
		values := make([]int32, 0, len(v))
		for _, item := range v {
			e, err := coerceEnum(item)
			if err != nil {
				return nil, err
			}
			values = append(values, e)
		}
		return NewSet(values...), nil
	case []float64:
		values := make([]int32, 0, len(v))
		for _, item := range v {
			e, err := coerceEnum(item)
			if err != nil {
				return nil, err
			}
			values = append(values, e)
		}
		return NewSet(values...), nil
	case []any:
		values := make([]int32, 0, len(v))
		for _, item := range v {
			e, err := coerceEnum(item)
			if err != nil {
				return nil, err
			}
			values = append(values, e)
		}
		return NewSet(values...), nil
	default:
		return nil, errors.InvalidArgumentf("expected list of enum values, got %T", raw)
	}
}
