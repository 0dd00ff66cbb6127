// Package metrics holds the Prometheus collectors reported by txguard components.
package metrics

const namespace = "txguard"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
