package domain

import (
	"fmt"
	"strings"
)

type BerthClass string

const (
	BerthLower  BerthClass = "LOWER"
	BerthUpper  BerthClass = "UPPER"
	BerthMiddle BerthClass = "MIDDLE"
	BerthRAC    BerthClass = "RAC"
)

// BerthScanOrder is the order in which berth classes are tried when the
// preferred class is unavailable or unspecified.
var BerthScanOrder = []BerthClass{BerthLower, BerthUpper, BerthMiddle}

func (c BerthClass) IsBerth() bool {
	return c == BerthLower || c == BerthUpper || c == BerthMiddle
}

// Tag is the prefix used in seat labels.
func (c BerthClass) Tag() string {
	switch c {
	case BerthLower:
		return "L"
	case BerthUpper:
		return "U"
	case BerthMiddle:
		return "M"
	case BerthRAC:
		return "RAC"
	}
	return ""
}

func (c BerthClass) Label(slot int) string {
	return fmt.Sprintf("%s%d", c.Tag(), slot)
}

// ParseBerthSelector turns a class letter (L, U or M, any case) into a berth
// class. An empty selector means no preference and returns ok=false.
func ParseBerthSelector(s string) (class BerthClass, ok bool, err error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", false, nil
	case "L":
		return BerthLower, true, nil
	case "U":
		return BerthUpper, true, nil
	case "M":
		return BerthMiddle, true, nil
	}
	return "", false, fmt.Errorf("%w: %q", ErrInvalidClassSelector, s)
}
