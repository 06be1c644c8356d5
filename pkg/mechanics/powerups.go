// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mechanics

// PowerUp identifies a named gameplay modifier.
type PowerUp string

const (
	// PowerUpTimeFreeze freezes the timer temporarily.
	PowerUpTimeFreeze PowerUp = "time_freeze"
	// PowerUpPointBoost doubles points for the next word.
	PowerUpPointBoost PowerUp = "point_boost"
	// PowerUpShield prevents a combo break on the next mistake.
	PowerUpShield PowerUp = "shield"
	// PowerUpSlowMotion slows down word movement.
	PowerUpSlowMotion PowerUp = "slow_motion"
	// PowerUpInstantClear instantly completes the current word.
	PowerUpInstantClear PowerUp = "instant_clear"
	// PowerUpComboLock maintains the combo for the next words.
	PowerUpComboLock PowerUp = "combo_lock"
)

// powerUpUnlocks lists every power-up with the catalog level that unlocks
// it, in stable order.
var powerUpUnlocks = []struct {
	id    PowerUp
	level int
}{
	{PowerUpTimeFreeze, 1},
	{PowerUpPointBoost, 1},
	{PowerUpShield, 2},
	{PowerUpSlowMotion, 3},
	{PowerUpInstantClear, 4},
	{PowerUpComboLock, 5},
}

// oneShotPowerUps are consumed by the turn they are used in.
var oneShotPowerUps = map[PowerUp]struct{}{
	PowerUpTimeFreeze:   {},
	PowerUpPointBoost:   {},
	PowerUpInstantClear: {},
}

// UnlockedPowerUps returns the power-ups available at or below a level.
func UnlockedPowerUps(level int) []PowerUp {
	var unlocked []PowerUp
	for _, p := range powerUpUnlocks {
		if p.level <= level {
			unlocked = append(unlocked, p.id)
		}
	}
	return unlocked
}

// IsOneShot reports whether a power-up is consumed on use.
func IsOneShot(p PowerUp) bool {
	_, ok := oneShotPowerUps[p]
	return ok
}

func hasPowerUp(active []PowerUp, p PowerUp) bool {
	for _, a := range active {
		if a == p {
			return true
		}
	}
	return false
}
