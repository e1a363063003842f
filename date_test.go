package pops

import "testing"

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2020-03-05")
	if err != nil {
		t.Fatal(err)
	}
	if d.Year != 2020 || d.Month != 3 || d.Day != 5 {
		t.Errorf(UnequalStringParameterError, "parsed date", "2020-03-05", d.String())
	}
	if s := d.String(); s != "2020-03-05" {
		t.Errorf(UnequalStringParameterError, "rendered date", "2020-03-05", s)
	}
}

func TestDate_AddMonths_ClampsOverflowDay(t *testing.T) {
	d := NewDate(2020, 1, 31)
	got := d.AddMonths(1)
	want := NewDate(2020, 2, 29) // 2020 is a leap year
	if !got.Equal(want) {
		t.Errorf(UnequalStringParameterError, "date after AddMonths", want.String(), got.String())
	}
}

func TestDate_IsLastDayOfYear(t *testing.T) {
	if !NewDate(2021, 12, 31).IsLastDayOfYear() {
		t.Error("expected Dec 31 to be the last day of the year")
	}
	if NewDate(2021, 12, 30).IsLastDayOfYear() {
		t.Error("did not expect Dec 30 to be the last day of the year")
	}
}

func TestDate_Compare(t *testing.T) {
	early := NewDate(2020, 1, 1)
	late := NewDate(2020, 1, 2)
	if !early.Before(late) {
		t.Error("expected early to be before late")
	}
	if !late.After(early) {
		t.Error("expected late to be after early")
	}
}
