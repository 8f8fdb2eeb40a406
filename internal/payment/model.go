package payment

import (
	"errors"
	"fmt"
	"strings"
)

type Method string

const (
	MethodCOD  Method = "cod"
	MethodUPI  Method = "upi"
	MethodCard Method = "card"
)

var ErrUnknownMethod = errors.New("unknown payment method")

// Methods lists what checkout offers, in display order.
func Methods() []Method {
	return []Method{MethodCOD, MethodUPI, MethodCard}
}

func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MethodCOD, MethodUPI, MethodCard:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

func (m Method) Label() string {
	switch m {
	case MethodCOD:
		return "Cash on delivery"
	case MethodUPI:
		return "UPI"
	case MethodCard:
		return "Credit / debit card"
	}
	return string(m)
}

// RequiresContact reports whether the courier needs a name and number to
// collect payment at the door.
func (m Method) RequiresContact() bool {
	return m == MethodCOD
}
