package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/irsum/internal/common"
	"github.com/yildizm/irsum/internal/parser"
)

// raw builds a raw button from alternating mark/space values; an odd
// count ends with a final mark
func raw(name string, values ...uint32) parser.Button {
	body := &parser.RawButton{Frequency: 38000, DutyCycle: 0.33}
	for i := 0; i+1 < len(values); i += 2 {
		body.Data = append(body.Data, parser.Pulse{Mark: values[i], Space: values[i+1]})
	}
	if len(values)%2 == 1 {
		last := values[len(values)-1]
		body.FinalOn = &last
	}
	return parser.Button{Name: name, Body: body}
}

func parsed(name string) parser.Button {
	return parser.Button{Name: name, Body: &parser.ParsedButton{Protocol: "NEC", Address: "04 00 00 00", Command: "08 00 00 00"}}
}

func analyze(t *testing.T, buttons ...parser.Button) *Analysis {
	t.Helper()
	analysis, err := NewEngine().Analyze(context.Background(), buttons)
	require.NoError(t, err)
	return analysis
}

func TestEqualSpreadsClassifyAsPDM(t *testing.T) {
	a := analyze(t, raw("A", 100, 100, 500, 200, 500, 200, 100, 600, 100, 600))

	assert.Equal(t, Timing{Mark: 100, Space: 100}, a.Preamble)
	assert.Equal(t, Timing{Mark: 300, Space: 400}, a.Dividers)
	assert.Equal(t, Timing{Mark: 100, Space: 200}, a.Bit0)
	assert.Equal(t, Timing{Mark: 500, Space: 600}, a.Bit1)
	assert.Nil(t, a.RepeatMarker)

	// mark and space spreads are both 400, ties go to PDM
	assert.Equal(t, ModulationPDM, a.Modulation)
	require.Len(t, a.Buttons, 1)
	assert.Equal(t, "0011", a.Buttons[0].Bits)
	assert.Equal(t, []string{"0011"}, a.Buttons[0].Groups)
	assert.Empty(t, a.Buttons[0].Hex)
	assert.Nil(t, a.Buttons[0].Extra)
	assert.Empty(t, a.Warnings)
}

func TestWiderMarkSpreadClassifiesAsPWM(t *testing.T) {
	a := analyze(t, raw("A", 100, 100, 500, 200, 500, 200, 100, 250, 100, 250))

	assert.Equal(t, Timing{Mark: 300, Space: 225}, a.Dividers)
	assert.Equal(t, ModulationPWM, a.Modulation)
	assert.Equal(t, "1100", a.Buttons[0].Bits)
}

func TestRepeatMarkerSplitsBitsFromExtra(t *testing.T) {
	button := raw("A",
		9000, 4500,
		560, 200, 560, 210, 560, 195, 560, 205,
		560, 5000, 560, 300,
		560)

	a := analyze(t, button)

	require.NotNil(t, a.RepeatMarker)
	assert.Equal(t, RepeatMarker{Button: "A", ButtonIndex: 0, Index: 4, Offset: 4, Space: 5000, LongSpaceThreshold: 2500}, *a.RepeatMarker)

	report := a.Buttons[0]
	assert.Equal(t, "0101", report.Bits)
	assert.Equal(t, []uint32{560, 5000, 560, 300, 560}, report.Extra)
	assert.Equal(t, 4, a.BitCount)

	assert.Equal(t, Timing{Mark: 560, Space: 202}, a.Dividers)
	assert.Equal(t, ModulationPDM, a.Modulation)
	assert.Contains(t, a.Warnings, "bit1 mark bucket is empty, averaged as 0")
}

func TestRepeatMarkerIndexCountsAcrossButtons(t *testing.T) {
	a := analyze(t,
		parsed("Power"),
		raw("A", 9000, 4500, 560, 200, 560, 1690, 560, 200),
		raw("B", 9000, 4500, 560, 200, 560, 40000, 560, 200),
	)

	// spaces 200 1690 200 200 precede 40000, whose running average is 572
	require.NotNil(t, a.RepeatMarker)
	assert.Equal(t, RepeatMarker{Button: "B", ButtonIndex: 2, Index: 4, Offset: 1, Space: 40000, LongSpaceThreshold: 20000}, *a.RepeatMarker)

	// both buttons have fewer than 4 post-preamble pulses, so nothing is extra
	assert.Equal(t, uint32(20100), a.Dividers.Space)
	assert.Equal(t, "000", a.Buttons[1].Bits)
	assert.Nil(t, a.Buttons[1].Extra)
	assert.Equal(t, "010", a.Buttons[2].Bits)
	assert.Nil(t, a.Buttons[2].Extra)
	assert.Equal(t, 6, a.BitCount)
}

func TestRepeatMarkerIndexCutsEveryButton(t *testing.T) {
	a := analyze(t,
		raw("A", 9000, 4500, 560, 200, 560, 40000, 560, 200, 560),
		raw("B", 9000, 4500, 560, 200, 560, 1690, 560, 200, 560),
	)

	require.NotNil(t, a.RepeatMarker)
	assert.Equal(t, 1, a.RepeatMarker.Index)
	assert.Equal(t, 1, a.RepeatMarker.Offset)

	assert.Equal(t, "0", a.Buttons[0].Bits)
	assert.Equal(t, []uint32{560, 40000, 560, 200, 560}, a.Buttons[0].Extra)
	assert.Equal(t, "0", a.Buttons[1].Bits)
	assert.Equal(t, []uint32{560, 1690, 560, 200, 560}, a.Buttons[1].Extra)
}

func TestFirstSpaceNeverStartsRepeat(t *testing.T) {
	a := analyze(t, raw("A", 9000, 4500, 560, 40000, 560, 560))
	assert.Nil(t, a.RepeatMarker)
}

func TestDecodeBytesToHex(t *testing.T) {
	values := []uint32{9000, 4500}
	for _, bit := range "0010000011011111" {
		space := uint32(560)
		if bit == '1' {
			space = 1690
		}
		values = append(values, 560, space)
	}
	values = append(values, 560)

	a := analyze(t, raw("Vol_up", values...))

	report := a.Buttons[0]
	assert.Equal(t, ModulationPDM, a.Modulation)
	assert.Equal(t, uint32(1125), a.Dividers.Space)
	assert.Equal(t, "0010000011011111", report.Bits)
	assert.Equal(t, []string{"00100000", "11011111"}, report.Groups)
	assert.Equal(t, "00100000 11011111", report.GroupedBits())
	assert.Equal(t, "20DF", report.Hex)
	assert.Equal(t, []uint32{560}, report.Extra)
}

func TestButtonReportsAndCounts(t *testing.T) {
	a := analyze(t,
		parsed("Power"),
		raw("Mute"),
		raw("A", 100, 100, 500, 200, 500, 200, 100, 600, 100, 600),
	)

	require.Len(t, a.Buttons, 3)
	assert.Equal(t, ButtonReport{Name: "Power", Kind: parser.KindParsed}, a.Buttons[0])
	assert.Equal(t, ButtonReport{Name: "Mute", Kind: parser.KindRaw}, a.Buttons[1])
	assert.Equal(t, "A", a.Buttons[2].Name)

	assert.Equal(t, 3, a.TotalButtons)
	assert.Equal(t, 2, a.RawButtons)
	assert.Equal(t, 1, a.ParsedButtons)
	assert.Equal(t, 4, a.BitCount)
	assert.Contains(t, a.Warnings, `button "Mute" has no pulse data`)
}

func TestEmptyBitRegion(t *testing.T) {
	a := analyze(t, raw("A", 9000, 4500))

	assert.Equal(t, Timing{Mark: 9000, Space: 4500}, a.Preamble)
	assert.Equal(t, ModulationPDM, a.Modulation)
	assert.Empty(t, a.Buttons[0].Bits)
	assert.Contains(t, a.Warnings, "bit region is empty, no bits decoded")

	_, err := NewEngine().WithBucketPolicy(BucketPolicyStrict).
		Analyze(context.Background(), []parser.Button{raw("A", 9000, 4500)})
	assert.True(t, errors.Is(err, common.ErrDegenerateBucket))
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name    string
		engine  Engine
		buttons []parser.Button
		want    error
	}{
		{
			name:   "no buttons",
			engine: NewEngine(),
			want:   common.ErrEmptyFile,
		},
		{
			name:    "parsed buttons only",
			engine:  NewEngine(),
			buttons: []parser.Button{parsed("Power"), parsed("Mute")},
			want:    common.ErrNoRawData,
		},
		{
			name:    "raw button without data",
			engine:  NewEngine(),
			buttons: []parser.Button{raw("Mute")},
			want:    common.ErrNoRawData,
		},
		{
			name:    "strict policy with constant marks",
			engine:  NewEngine().WithBucketPolicy(BucketPolicyStrict),
			buttons: []parser.Button{raw("A", 9000, 4500, 560, 560, 560, 1690)},
			want:    common.ErrDegenerateBucket,
		},
		{
			name:    "zero repeat factor",
			engine:  NewEngine().WithRepeatFactor(0),
			buttons: []parser.Button{raw("A", 9000, 4500, 560, 560)},
			want:    common.ErrConfiguration,
		},
		{
			name:    "zero group size",
			engine:  NewEngine().WithGroupSize(0),
			buttons: []parser.Button{raw("A", 9000, 4500, 560, 560)},
			want:    common.ErrConfiguration,
		},
		{
			name:    "unknown bucket policy",
			engine:  NewEngine().WithBucketPolicy("lenient"),
			buttons: []parser.Button{raw("A", 9000, 4500, 560, 560)},
			want:    common.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := tt.engine.Analyze(context.Background(), tt.buttons)
			assert.Nil(t, analysis)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestAnalyzeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Analyze(ctx, []parser.Button{raw("A", 9000, 4500, 560, 560)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	buttons := []parser.Button{
		parsed("Power"),
		raw("A", 9000, 4500, 560, 560, 560, 1690, 560, 1690, 560, 40000, 9000, 2250, 560),
		raw("B", 9000, 4500, 560, 1690, 560, 560, 560, 560),
	}
	before := raw("A", 9000, 4500, 560, 560, 560, 1690, 560, 1690, 560, 40000, 9000, 2250, 560)

	engine := NewEngine()
	first, err := engine.Analyze(context.Background(), buttons)
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background(), buttons)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, buttons[1], "analysis must not modify its input")
}

func TestAnalyzeParsedCapture(t *testing.T) {
	file, err := parser.Parse(`Filetype: IR signals file
Version: 1
#
name: Power
type: raw
frequency: 38000
duty_cycle: 0.330000
data: 9000 4500 560 560 560 1690 560 560 560 1690 560
`)
	require.NoError(t, err)

	a, err := NewEngine().WithGroupSize(2).Analyze(context.Background(), file.Buttons)
	require.NoError(t, err)

	assert.Equal(t, ModulationPDM, a.Modulation)
	assert.Equal(t, "0101", a.Buttons[0].Bits)
	assert.Equal(t, []string{"01", "01"}, a.Buttons[0].Groups)
	assert.Equal(t, []uint32{560}, a.Buttons[0].Extra)
}
