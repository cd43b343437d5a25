package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/timecompass/internal/constants"
)

// DecodeSettings merges a stored settings record over the defaults.
// Fields absent from data, null, or not decodable keep their default value;
// each undecodable field is reported in the returned slice but never fails
// the merge. Unknown fields are ignored.
func DecodeSettings(data []byte) (Settings, []error) {
	settings := DefaultSettings()
	if len(bytes.TrimSpace(data)) == 0 {
		return settings, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return settings, []error{fmt.Errorf("settings record is not a JSON object: %w", err)}
	}

	var errs []error
	for name, decode := range settings.fieldDecoders() {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		if err := decode(raw); err != nil {
			errs = append(errs, fmt.Errorf("parsing %s: %w", name, err))
		}
	}

	settings.WorkDays = NormalizeWorkDays(settings.WorkDays)
	return settings, errs
}

// EncodeSettings serialises settings to the persisted JSON record.
func EncodeSettings(settings Settings) ([]byte, error) {
	settings.WorkDays = NormalizeWorkDays(settings.WorkDays)
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize settings: %w", err)
	}
	return data, nil
}

// NormalizeWorkDays drops out-of-range weekdays and duplicates and sorts the rest.
func NormalizeWorkDays(days []time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday || slices.Contains(out, d) {
			continue
		}
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

func (s *Settings) fieldDecoders() map[string]func(json.RawMessage) error {
	return map[string]func(json.RawMessage) error{
		constants.SettingBirthDate:      decodeInto(&s.BirthDate),
		constants.SettingLifeExpectancy: decodeInto(&s.LifeExpectancy),
		constants.SettingWorkStartTime:  decodeInto(&s.WorkStartTime),
		constants.SettingWorkEndTime:    decodeInto(&s.WorkEndTime),
		constants.SettingFocusDuration:  decodeInto(&s.FocusDuration),
		constants.SettingHasOnboarded:   decodeInto(&s.HasOnboarded),
		constants.SettingWorkDays:       decodeInto(&s.WorkDays),
		constants.SettingSemester1Start: decodeInto(&s.Semester1Start),
		constants.SettingSemester1End:   decodeInto(&s.Semester1End),
		constants.SettingSemester2Start: decodeInto(&s.Semester2Start),
		constants.SettingSemester2End:   decodeInto(&s.Semester2End),
	}
}

// decodeInto only writes dst when the whole value decodes.
func decodeInto[T any](dst *T) func(json.RawMessage) error {
	return func(raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}
