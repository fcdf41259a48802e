package main

import "encoding/json"

// Client -> Server message types
const (
	MsgStart   = "start"
	MsgRestart = "restart"
	MsgPause   = "pause"
	MsgResume  = "resume"
	MsgInput   = "input"
)

// Server -> Client message types
const (
	MsgWelcome  = "welcome"
	MsgState    = "state"
	MsgGameOver = "gameover"
	MsgError    = "error"
)

// Binary input frame: [0x01, flags, dyaw_hi, dyaw_lo, dpitch_hi, dpitch_lo]
const (
	BinaryInputTag = 0x01
	BinaryInputLen = 6
)

// Binary input flag bits
const (
	FlagForward = 1 << iota
	FlagBack
	FlagLeft
	FlagRight
	FlagSprint
	FlagFire
	FlagReload
	FlagAbility
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is the renderer's input since its previous message
type ClientInput struct {
	Forward bool    `json:"f"`
	Back    bool    `json:"b"`
	Left    bool    `json:"l"`
	Right   bool    `json:"r"`
	Sprint  bool    `json:"sprint"`
	DYaw    float64 `json:"dyaw"`   // mouse X delta, pixels
	DPitch  float64 `json:"dpitch"` // mouse Y delta, pixels
	Fire    bool    `json:"fire"`
	Reload  bool    `json:"reload"`
	Ability bool    `json:"ability"`
}

// DecodeBinaryInput unpacks a compact input frame
func DecodeBinaryInput(msg []byte) (ClientInput, bool) {
	if len(msg) != BinaryInputLen || msg[0] != BinaryInputTag {
		return ClientInput{}, false
	}
	flags := msg[1]
	return ClientInput{
		Forward: flags&FlagForward != 0,
		Back:    flags&FlagBack != 0,
		Left:    flags&FlagLeft != 0,
		Right:   flags&FlagRight != 0,
		Sprint:  flags&FlagSprint != 0,
		Fire:    flags&FlagFire != 0,
		Reload:  flags&FlagReload != 0,
		Ability: flags&FlagAbility != 0,
		DYaw:    float64(int16(uint16(msg[2])<<8 | uint16(msg[3]))),
		DPitch:  float64(int16(uint16(msg[4])<<8 | uint16(msg[5]))),
	}, true
}

// EncodeBinaryInput packs an input into a compact frame. Deltas saturate at int16.
func EncodeBinaryInput(in ClientInput) []byte {
	var flags byte
	set := func(on bool, bit byte) {
		if on {
			flags |= bit
		}
	}
	set(in.Forward, FlagForward)
	set(in.Back, FlagBack)
	set(in.Left, FlagLeft)
	set(in.Right, FlagRight)
	set(in.Sprint, FlagSprint)
	set(in.Fire, FlagFire)
	set(in.Reload, FlagReload)
	set(in.Ability, FlagAbility)
	dy := uint16(int16(Clamp(in.DYaw, -32768, 32767)))
	dp := uint16(int16(Clamp(in.DPitch, -32768, 32767)))
	return []byte{BinaryInputTag, flags, byte(dy >> 8), byte(dy), byte(dp >> 8), byte(dp)}
}

// VitalsState is the player's HUD data
type VitalsState struct {
	Health    int  `json:"hp" msgpack:"hp"`
	Ammo      int  `json:"ammo" msgpack:"ammo"`
	Wave      int  `json:"wave" msgpack:"wave"`
	Score     int  `json:"sc" msgpack:"sc"`
	Streak    int  `json:"st" msgpack:"st"`
	Charge    int  `json:"ch" msgpack:"ch"`
	Reloading bool `json:"rl" msgpack:"rl"`
}

// PlayerState is the camera pose
type PlayerState struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Z     float64 `json:"z" msgpack:"z"`
	Yaw   float64 `json:"yaw" msgpack:"yaw"`
	Pitch float64 `json:"pitch" msgpack:"pitch"`
}

// EnemyState is sent per live enemy
type EnemyState struct {
	ID    string  `json:"id" msgpack:"id"`
	Kind  string  `json:"k" msgpack:"k"`
	Tag   string  `json:"c" msgpack:"c"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Z     float64 `json:"z" msgpack:"z"`
	HP    float64 `json:"hp" msgpack:"hp"`
	MaxHP float64 `json:"mhp" msgpack:"mhp"`
}

// PowerUpState is sent per power-up
type PowerUpState struct {
	ID   string  `json:"id" msgpack:"id"`
	Kind string  `json:"k" msgpack:"k"`
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	Z    float64 `json:"z" msgpack:"z"`
}

// ProjectileState is sent per tracer
type ProjectileState struct {
	ID string  `json:"id" msgpack:"id"`
	X  float64 `json:"x" msgpack:"x"`
	Y  float64 `json:"y" msgpack:"y"`
	Z  float64 `json:"z" msgpack:"z"`
}

// Snapshot is the full render surface for one frame
type Snapshot struct {
	Frame       uint64            `json:"frame" msgpack:"frame"`
	Phase       string            `json:"phase" msgpack:"phase"`
	Paused      bool              `json:"paused" msgpack:"paused"`
	Vitals      VitalsState       `json:"v" msgpack:"v"`
	Player      PlayerState       `json:"p" msgpack:"p"`
	Enemies     []EnemyState      `json:"e" msgpack:"e"`
	PowerUps    []PowerUpState    `json:"pu" msgpack:"pu"`
	Projectiles []ProjectileState `json:"pr" msgpack:"pr"`
	MuzzleFlash bool              `json:"mf" msgpack:"mf"`
	Status      string            `json:"msg,omitempty" msgpack:"msg,omitempty"`
}

// WelcomeMsg is sent when a renderer connects
type WelcomeMsg struct {
	SessionID string `json:"sid"`
	TickRate  int    `json:"tick"`
}

// GameOverMsg reports the end of a run
type GameOverMsg struct {
	Wave   int     `json:"wave"`
	Score  int     `json:"sc"`
	Kills  int     `json:"kills"`
	Length float64 `json:"secs"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
