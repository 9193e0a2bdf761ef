package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecorateAppendsInTableOrder(t *testing.T) {
	got := Decorate("I am so happy and excited today")
	assert.Equal(t, "I am so happy and excited today 😊 🎉", got)
}

func TestDecorateSadAndAngry(t *testing.T) {
	got := Decorate("This makes me sad and angry")
	assert.Equal(t, "This makes me sad and angry 😢 😡", got)
}

func TestDecorateOrderIgnoresTextOrder(t *testing.T) {
	got := Decorate("angry first, then love, then happy")
	assert.Equal(t, "angry first, then love, then happy 😊 ❤️ 😡", got)
}

func TestDecorateIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "HAPPY Days 😊", Decorate("HAPPY Days"))
}

func TestDecorateMatchesSubstrings(t *testing.T) {
	assert.Equal(t, "I was unhappy 😊", Decorate("I was unhappy"))
	assert.Equal(t, "Lovely weather ❤️", Decorate("Lovely weather"))
}

func TestDecorateRepeatedKeywordCountsOnce(t *testing.T) {
	assert.Equal(t, "sad sad sad 😢", Decorate("sad sad sad"))
}

func TestDecorateWithoutKeywords(t *testing.T) {
	assert.Equal(t, "The sun is a star.", Decorate("The sun is a star."))
	assert.Equal(t, "", Decorate(""))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, []Label{Happy, Excited}, Detect("So Excited and happy"))
	assert.Nil(t, Detect("nothing here"))
}

func TestTableIsCopied(t *testing.T) {
	entries := Table()
	entries[0].Glyph = "x"

	assert.Equal(t, "😊", Table()[0].Glyph)
	assert.Len(t, Table(), 5)
}
