// Package save reads and writes the flat key=value save file.
package save

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

func init() {
	// Write "key=value" rather than "key = value".
	ini.PrettyFormat = false
}

// ErrMissingField is returned when a required key is absent.
var ErrMissingField = errors.New("missing field")

// Save file keys.
const (
	KeyPlayerName      = "PlayerName"
	KeyPlayerHealth    = "PlayerHealth"
	KeyPlayerMaxHealth = "PlayerMaxHealth"
	KeyPlayerAttack    = "PlayerAttack"
	KeyPlayerDefense   = "PlayerDefense"
	KeyPlayerExp       = "PlayerExp"
	KeyCurrentRoom     = "CurrentRoom"
	KeyGold            = "Gold"
	KeySolvedRooms     = "SolvedRooms"
	KeyTurn            = "Turn"
	KeyRNGSeed         = "RNGSeed"
	KeyRNGPosition     = "RNGPosition"
)

// SaveData is the persisted snapshot: the player's stats and position.
// Inventory and room contents are not persisted.
type SaveData struct {
	PlayerName      string
	PlayerHealth    int
	PlayerMaxHealth int
	PlayerAttack    int
	PlayerDefense   int
	PlayerExp       int
	CurrentRoom     int
	Gold            int

	// Optional; older files may omit them.
	SolvedRooms []int
	Turn        int
	RNGSeed     int64
	RNGPosition int64
}

// Save serializes a snapshot to key=value lines.
func Save(sd *SaveData) ([]byte, error) {
	cfg := ini.Empty()
	sec := cfg.Section("")
	sec.Key(KeyPlayerName).SetValue(sd.PlayerName)
	sec.Key(KeyPlayerHealth).SetValue(strconv.Itoa(sd.PlayerHealth))
	sec.Key(KeyPlayerMaxHealth).SetValue(strconv.Itoa(sd.PlayerMaxHealth))
	sec.Key(KeyPlayerAttack).SetValue(strconv.Itoa(sd.PlayerAttack))
	sec.Key(KeyPlayerDefense).SetValue(strconv.Itoa(sd.PlayerDefense))
	sec.Key(KeyPlayerExp).SetValue(strconv.Itoa(sd.PlayerExp))
	sec.Key(KeyCurrentRoom).SetValue(strconv.Itoa(sd.CurrentRoom))
	sec.Key(KeyGold).SetValue(strconv.Itoa(sd.Gold))

	solved := make([]string, len(sd.SolvedRooms))
	for i, id := range sd.SolvedRooms {
		solved[i] = strconv.Itoa(id)
	}
	sec.Key(KeySolvedRooms).SetValue(strings.Join(solved, ","))
	sec.Key(KeyTurn).SetValue(strconv.Itoa(sd.Turn))
	sec.Key(KeyRNGSeed).SetValue(strconv.FormatInt(sd.RNGSeed, 10))
	sec.Key(KeyRNGPosition).SetValue(strconv.FormatInt(sd.RNGPosition, 10))

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load parses key=value lines. Unknown keys are ignored.
func Load(data []byte) (*SaveData, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parsing save: %w", err)
	}
	sec := cfg.Section("")

	if !sec.HasKey(KeyPlayerName) {
		return nil, fmt.Errorf("%s: %w", KeyPlayerName, ErrMissingField)
	}
	sd := &SaveData{PlayerName: sec.Key(KeyPlayerName).String()}

	required := []struct {
		key string
		dst *int
	}{
		{KeyPlayerHealth, &sd.PlayerHealth},
		{KeyPlayerMaxHealth, &sd.PlayerMaxHealth},
		{KeyPlayerAttack, &sd.PlayerAttack},
		{KeyPlayerDefense, &sd.PlayerDefense},
		{KeyPlayerExp, &sd.PlayerExp},
		{KeyCurrentRoom, &sd.CurrentRoom},
	}
	for _, f := range required {
		if !sec.HasKey(f.key) {
			return nil, fmt.Errorf("%s: %w", f.key, ErrMissingField)
		}
		v, err := sec.Key(f.key).Int()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = v
	}

	sd.Gold = sec.Key(KeyGold).MustInt(0)
	sd.Turn = sec.Key(KeyTurn).MustInt(0)
	sd.RNGSeed = sec.Key(KeyRNGSeed).MustInt64(0)
	sd.RNGPosition = sec.Key(KeyRNGPosition).MustInt64(0)
	for _, s := range strings.Split(sec.Key(KeySolvedRooms).String(), ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			sd.SolvedRooms = append(sd.SolvedRooms, id)
		}
	}
	return sd, nil
}
