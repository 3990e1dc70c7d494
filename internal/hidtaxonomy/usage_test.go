package hidtaxonomy

import "testing"

func TestKeyCodeNameRoundTrip(t *testing.T) {
	for _, e := range keyCodePrimary {
		name := KeyCodeName(KeyCode(e.code))
		got, ok := ParseKeyCode(name)
		if !ok {
			t.Fatalf("ParseKeyCode(%q) failed to resolve back", name)
		}
		if uint32(got) != e.code {
			t.Errorf("round trip mismatch for %q: got 0x%x want 0x%x", name, got, e.code)
		}
	}
}

func TestAliasResolvesButNeverCanonical(t *testing.T) {
	code, ok := ParseKeyCode("keyboard_left_alt")
	if !ok || code != KeyCodeLeftOption {
		t.Fatalf("alias lookup failed: %v %v", code, ok)
	}
	if KeyCodeName(KeyCodeLeftOption) != "left_option" {
		t.Fatalf("canonical name changed: %s", KeyCodeName(KeyCodeLeftOption))
	}
}

func TestUnnamedUsageRoundTrip(t *testing.T) {
	name := KeyCodeName(KeyCode(0xdead))
	if name != "(number:57005)" {
		t.Fatalf("unexpected unnamed format: %s", name)
	}
	got, ok := ParseKeyCode(name)
	if !ok || uint32(got) != 0xdead {
		t.Fatalf("round trip of unnamed usage failed: %v %v", got, ok)
	}
}

func TestModifierFlagProjection(t *testing.T) {
	f := MakeModifierFlag(KeyCodeLeftShift.UsagePair())
	if f != ModifierFlagLeftShift {
		t.Fatalf("got %v", f)
	}
	if MakeHIDReportModifier(ModifierFlagLeftShift) != 0x02 {
		t.Fatalf("bad report bit: %x", MakeHIDReportModifier(ModifierFlagLeftShift))
	}
	if MakeHIDReportModifier(ModifierFlagCapsLock) != 0 {
		t.Fatalf("caps_lock should have no report bit")
	}
	if MakeModifierFlag(KeyCodeA.UsagePair()) != ModifierFlagNone {
		t.Fatalf("plain key should not be a modifier")
	}
}

func TestPointingButtonBitmask(t *testing.T) {
	var m PointingButtonBitmask
	m = m.Set(PointingButtonButton1, true)
	m = m.Set(PointingButtonButton3, true)
	if !m.Pressed(PointingButtonButton1) || !m.Pressed(PointingButtonButton3) {
		t.Fatal("expected button1 and button3 pressed")
	}
	if m.Pressed(PointingButtonButton2) {
		t.Fatal("button2 should not be pressed")
	}
	m = m.Set(PointingButtonButton1, false)
	if m.Pressed(PointingButtonButton1) {
		t.Fatal("button1 should be released")
	}
}
