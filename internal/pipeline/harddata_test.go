package pipeline

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestExtractHardData(t *testing.T) {
	texts := []string{
		"Shares fell -3.2% after the announcement of a $4.5bn writedown.",
		"Analysts expect a 12% recovery; the fund holds USD 300M in reserves.",
		"Again the -3.2% figure was cited by several outlets.",
	}

	data := ExtractHardData(texts)

	wantPct := []string{"-3.2%", "12%"}
	if !reflect.DeepEqual(data.Percentages, wantPct) {
		t.Errorf("Expected percentages %v, got %v", wantPct, data.Percentages)
	}

	wantMon := []string{"$4.5bn", "USD 300M"}
	if !reflect.DeepEqual(data.Monetary, wantMon) {
		t.Errorf("Expected monetary %v, got %v", wantMon, data.Monetary)
	}

	if data.KeyNumbers == nil {
		t.Errorf("KeyNumbers must be an empty list, not nil")
	}
}

func TestExtractHardData_CapsAtTen(t *testing.T) {
	var parts []string
	for i := 1; i <= 15; i++ {
		parts = append(parts, fmt.Sprintf("level %d%%", i))
	}

	data := ExtractHardData([]string{strings.Join(parts, " ")})
	if len(data.Percentages) != 10 {
		t.Errorf("Expected 10 percentages, got %d", len(data.Percentages))
	}
}

func TestExtractHardData_NoMatches(t *testing.T) {
	data := ExtractHardData([]string{"Nothing numeric in this sentence at all."})
	if len(data.Percentages) != 0 || len(data.Monetary) != 0 {
		t.Errorf("Expected empty extraction, got %+v", data)
	}
}

func TestFormatHardData(t *testing.T) {
	data := ExtractHardData([]string{"Up 5% on $2bn inflows."})
	formatted := FormatHardData(data)

	if !strings.Contains(formatted, "5%") || !strings.Contains(formatted, "$2bn") {
		t.Errorf("Formatted evidence missing values: %q", formatted)
	}

	empty := FormatHardData(ExtractHardData(nil))
	if !strings.Contains(empty, "Nenhum dado") {
		t.Errorf("Expected the no-data message, got %q", empty)
	}
}
