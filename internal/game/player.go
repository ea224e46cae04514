package game

// Player is a named contestant. Score never goes below zero: only vowel
// purchases subtract, and those require score >= VowelCost.
type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// AddScore increases the score by n.
func (p *Player) AddScore(n int) { p.Score += n }

// LoseScore decreases the score by n.
func (p *Player) LoseScore(n int) { p.Score -= n }

// Bankrupt sets the score to exactly 0.
func (p *Player) Bankrupt() { p.Score = 0 }
