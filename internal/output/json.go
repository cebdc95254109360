package output

import (
	"encoding/json"

	"github.com/girste/posture/internal/audit"
)

// JSON renders the report as indented JSON for machine consumption.
func JSON(report *audit.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
