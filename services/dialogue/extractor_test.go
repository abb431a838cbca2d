package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"skybook/models"
)

var testNow = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func TestExtractCitiesFromToPattern(t *testing.T) {
	e := ExtractEntities("I want to book a flight from Delhi to Mumbai tomorrow", testNow)
	assert.Equal(t, "Delhi", e.Origin)
	assert.Equal(t, "Mumbai", e.Destination)
}

func TestExtractCitiesFromToPatternIsCaseInsensitive(t *testing.T) {
	e := ExtractEntities("FROM chennai TO kolkata please", testNow)
	assert.Equal(t, "Chennai", e.Origin)
	assert.Equal(t, "Kolkata", e.Destination)
}

func TestExtractCitiesFromToWinsOverGazetteer(t *testing.T) {
	// The explicit pattern is tried first even when other gazetteer cities
	// appear earlier in the text.
	e := ExtractEntities("forget pune, fly from Hyderabad to Ahmedabad", testNow)
	assert.Equal(t, "Hyderabad", e.Origin)
	assert.Equal(t, "Ahmedabad", e.Destination)
}

func TestExtractCitiesGazetteerOrderOfAppearance(t *testing.T) {
	e := ExtractEntities("leaving mumbai, heading towards delhi", testNow)
	assert.Equal(t, "Mumbai", e.Origin)
	assert.Equal(t, "Delhi", e.Destination)
}

func TestExtractCitiesGazetteerAliases(t *testing.T) {
	e := ExtractEntities("bombay then blr", testNow)
	assert.Equal(t, "Mumbai", e.Origin)
	assert.Equal(t, "Bangalore", e.Destination)
}

func TestExtractCitiesSingleHitNeverGuesses(t *testing.T) {
	e := ExtractEntities("what about mumbai?", testNow)
	assert.Empty(t, e.Origin)
	assert.Empty(t, e.Destination)
}

func TestExtractCitiesNoHits(t *testing.T) {
	e := ExtractEntities("hello there", testNow)
	assert.Empty(t, e.Origin)
	assert.Empty(t, e.Destination)
}

func TestExtractDateTomorrow(t *testing.T) {
	e := ExtractEntities("leaving tomorrow", testNow)
	assert.Equal(t, "2026-09-01", e.TravelDate)
}

func TestExtractDateToday(t *testing.T) {
	e := ExtractEntities("I need to leave today", testNow)
	assert.Equal(t, "2026-08-31", e.TravelDate)
}

func TestExtractDateTomorrowBeatsToday(t *testing.T) {
	e := ExtractEntities("not today, tomorrow", testNow)
	assert.Equal(t, "2026-09-01", e.TravelDate)
}

func TestExtractDateWholeWordOnly(t *testing.T) {
	e := ExtractEntities("todays flights?", testNow)
	assert.Empty(t, e.TravelDate)
}

func TestExtractDateDayFirst(t *testing.T) {
	e := ExtractEntities("flying on 5/9/2026", testNow)
	assert.Equal(t, "2026-09-05", e.TravelDate)
}

func TestExtractDateDayFirstDashes(t *testing.T) {
	e := ExtractEntities("on 25-12-2026 please", testNow)
	assert.Equal(t, "2026-12-25", e.TravelDate)
}

func TestExtractDateYearFirst(t *testing.T) {
	e := ExtractEntities("depart 2026/9/5", testNow)
	assert.Equal(t, "2026-09-05", e.TravelDate)
}

func TestExtractDateInvalidMonthIgnored(t *testing.T) {
	e := ExtractEntities("code 5/19/2026", testNow)
	assert.Empty(t, e.TravelDate)
}

func TestExtractDateAbsent(t *testing.T) {
	e := ExtractEntities("from Delhi to Mumbai", testNow)
	assert.Empty(t, e.TravelDate)
}

func TestExtractEntitiesIsTotal(t *testing.T) {
	for _, text := range []string{"", "   ", "!!!", "from  to ", "0/0/0000", "tomorrowland"} {
		assert.NotPanics(t, func() { ExtractEntities(text, testNow) })
	}
}

func TestExtractPassengerEmail(t *testing.T) {
	p := ExtractPassenger("my email is john.doe@example.com")
	assert.Equal(t, "john.doe@example.com", p.Email)
}

func TestExtractPassengerPhone(t *testing.T) {
	p := ExtractPassenger("call me on +91 12345 67890")
	assert.Equal(t, "+911234567890", p.Phone)
}

func TestExtractPassengerAgePhrase(t *testing.T) {
	p := ExtractPassenger("I am 30")
	assert.Equal(t, 30, p.Age)
}

func TestExtractPassengerBareNumberIsAge(t *testing.T) {
	p := ExtractPassenger("42")
	assert.Equal(t, 42, p.Age)
	assert.Empty(t, p.Phone)
}

func TestExtractPassengerName(t *testing.T) {
	p := ExtractPassenger("my name is john doe")
	assert.Equal(t, "John Doe", p.FullName)
}

func TestExtractPassengerBareNameFallback(t *testing.T) {
	p := ExtractPassenger("john doe")
	assert.Equal(t, "John Doe", p.FullName)
}

func TestCityToIATA(t *testing.T) {
	assert.Equal(t, "DEL", CityToIATA("Delhi"))
	assert.Equal(t, "BOM", CityToIATA("bombay"))
	assert.Equal(t, "", CityToIATA("Atlantis"))
}

func TestMergeContextIdentityLaw(t *testing.T) {
	ctx := models.ConversationContext{
		Origin:        "Delhi",
		Destination:   "Mumbai",
		DepartureDate: "2026-09-01",
		BookingStep:   models.StepShowingFlights,
	}
	assert.Equal(t, ctx, MergeContext(ctx, models.ExtractedEntities{}))
}

func TestMergeContextNeverClears(t *testing.T) {
	ctx := models.ConversationContext{Origin: "Delhi"}
	merged := MergeContext(ctx, models.ExtractedEntities{Destination: "Pune"})
	assert.Equal(t, "Delhi", merged.Origin)
	assert.Equal(t, "Pune", merged.Destination)
}

func TestMergeContextOverwritesWithFreshExtraction(t *testing.T) {
	ctx := models.ConversationContext{Origin: "Delhi", Destination: "Mumbai"}
	merged := MergeContext(ctx, models.ExtractedEntities{Origin: "Chennai", Destination: "Kolkata"})
	assert.Equal(t, "Chennai", merged.Origin)
	assert.Equal(t, "Kolkata", merged.Destination)
}

func TestMergeContextDoesNotMutateInput(t *testing.T) {
	ctx := models.ConversationContext{Origin: "Delhi"}
	MergeContext(ctx, models.ExtractedEntities{Origin: "Pune"})
	assert.Equal(t, "Delhi", ctx.Origin)
}
