package payment

import "strings"

var instructionMap = map[Method][]string{
	MethodCOD: {
		"Your order will be delivered to {{address}}",
		"Keep {{amount}} in cash ready when the delivery partner arrives",
		"Pay the delivery partner directly and ask for a receipt",
		"Exact change helps the delivery partner finish faster",
	},
	MethodUPI: {
		"Open any UPI app (GPay, PhonePe, Paytm or your bank app)",
		"Approve the collect request of {{amount}} for order {{order_id}}",
		"Do not close the app until the payment is confirmed",
	},
	MethodCard: {
		"Enter your card number, expiry date and CVV",
		"Complete the one-time password check from your bank",
		"Wait until the payment of {{amount}} is confirmed",
	},
}

// GetInstructions returns the step templates for method. Placeholders look
// like {{amount}} and are filled by InjectVariables.
func GetInstructions(method Method) []string {
	if steps, ok := instructionMap[method]; ok {
		return append([]string(nil), steps...)
	}

	return []string{
		"Follow the payment instructions shown on this page",
	}
}

type InstructionVars map[string]string

// InjectVariables fills known placeholders; unknown ones are left as-is.
func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}

// Instructions is GetInstructions followed by InjectVariables.
func Instructions(method Method, vars InstructionVars) []string {
	return InjectVariables(GetInstructions(method), vars)
}
