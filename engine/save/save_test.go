package save

import (
	"errors"
	"strings"
	"testing"
)

func testData() *SaveData {
	return &SaveData{
		PlayerName:      "Aria",
		PlayerHealth:    72,
		PlayerMaxHealth: 100,
		PlayerAttack:    15,
		PlayerDefense:   8,
		PlayerExp:       55,
		CurrentRoom:     4,
		Gold:            12,
		SolvedRooms:     []int{3, 4},
		Turn:            31,
		RNGSeed:         42,
		RNGPosition:     17,
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := Save(testData())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := testData()
	if sd.PlayerName != want.PlayerName || sd.PlayerHealth != want.PlayerHealth ||
		sd.PlayerMaxHealth != want.PlayerMaxHealth || sd.PlayerAttack != want.PlayerAttack ||
		sd.PlayerDefense != want.PlayerDefense || sd.PlayerExp != want.PlayerExp ||
		sd.CurrentRoom != want.CurrentRoom || sd.Gold != want.Gold {
		t.Errorf("player fields differ: got %+v", sd)
	}
	if len(sd.SolvedRooms) != 2 || sd.SolvedRooms[0] != 3 || sd.SolvedRooms[1] != 4 {
		t.Errorf("solved rooms = %v", sd.SolvedRooms)
	}
	if sd.Turn != 31 || sd.RNGSeed != 42 || sd.RNGPosition != 17 {
		t.Errorf("turn=%d seed=%d pos=%d", sd.Turn, sd.RNGSeed, sd.RNGPosition)
	}
}

func TestSave_KeyValueLines(t *testing.T) {
	data, err := Save(testData())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	text := string(data)
	for _, line := range []string{"PlayerName=Aria", "PlayerHealth=72", "CurrentRoom=4"} {
		if !strings.Contains(text, line) {
			t.Errorf("missing line %q in:\n%s", line, text)
		}
	}
	if strings.Contains(text, "[") {
		t.Errorf("save file should have no sections:\n%s", text)
	}
}

func TestLoad_MinimalFile(t *testing.T) {
	data := []byte(`PlayerName=Bo
PlayerHealth=50
PlayerMaxHealth=100
PlayerAttack=15
PlayerDefense=8
PlayerExp=0
CurrentRoom=2
`)
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sd.PlayerName != "Bo" || sd.CurrentRoom != 2 || sd.Gold != 0 || len(sd.SolvedRooms) != 0 {
		t.Errorf("unexpected %+v", sd)
	}
}

func TestLoad_MissingField(t *testing.T) {
	data := []byte("PlayerName=Bo\nPlayerHealth=50\n")
	if _, err := Load(data); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestLoad_BadNumber(t *testing.T) {
	data := []byte(`PlayerName=Bo
PlayerHealth=lots
PlayerMaxHealth=100
PlayerAttack=15
PlayerDefense=8
PlayerExp=0
CurrentRoom=2
`)
	if _, err := Load(data); err == nil {
		t.Error("expected an error for a non-numeric value")
	}
}
