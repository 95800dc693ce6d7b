package engine

import "fmt"

var (
	msgRolled    = Text{PT: "Saiu %d", EN: "You rolled %d"}
	msgRest      = Text{PT: "Sábado: descansas este turno e ganhas +2 pontos de fé.", EN: "Sabbath: you rest this turn and gain +2 faith points."}
	msgSabbath   = Text{PT: "Sábado: +2 pontos de fé. Descansas no próximo turno.", EN: "Sabbath: +2 faith points. You rest on your next turn."}
	msgQuestion  = Text{PT: "Pergunta: %s", EN: "Question: %s"}
	msgCorrect   = Text{PT: "Resposta certa! +2 pontos de fé.", EN: "Correct answer! +2 faith points."}
	msgWrong     = Text{PT: "Resposta errada: -1 ponto de fé. Resposta: %s", EN: "Wrong answer: -1 faith point. Answer: %s"}
	msgChallenge = Text{PT: "Desafio de Fé: reflete e segue em frente.", EN: "Faith Challenge: reflect and move on."}
)

func localize(t Text, lang Lang, args ...any) string {
	return fmt.Sprintf(t.In(lang), args...)
}

var tileLabels = map[TileKind]Text{
	TileStart:      {PT: "Vida Terrena (Início)", EN: "Earthly Life (Start)"},
	TileQuestion:   {PT: "Pergunta Bíblica", EN: "Bible Question"},
	TileChallenge:  {PT: "Desafio de Fé", EN: "Faith Challenge"},
	TileBlessing:   {PT: "Bênção", EN: "Blessing"},
	TileObstacle:   {PT: "Obstáculo", EN: "Obstacle"},
	TileSabbath:    {PT: "Sábado", EN: "Sabbath"},
	TileTithe:      {PT: "Dízimo", EN: "Tithe"},
	TileMission:    {PT: "Missão", EN: "Mission"},
	TileTemptation: {PT: "Tentação", EN: "Temptation"},
}

var tileColors = map[TileKind]string{
	TileStart:      "#e7f0ff",
	TileQuestion:   "#eaf7ff",
	TileChallenge:  "#fff1e6",
	TileBlessing:   "#ebfaef",
	TileObstacle:   "#fdecea",
	TileSabbath:    "#fff7d6",
	TileTithe:      "#f3e8ff",
	TileMission:    "#e6fff3",
	TileTemptation: "#ffe6f2",
}

// TileLabel returns the display name of a tile kind.
func TileLabel(kind TileKind, lang Lang) string {
	if t, ok := tileLabels[kind]; ok {
		return t.In(lang)
	}
	return string(kind)
}

// TileColor returns the background color renderers use for a tile kind.
func TileColor(kind TileKind) string {
	if c, ok := tileColors[kind]; ok {
		return c
	}
	return "#f0f0f0"
}
