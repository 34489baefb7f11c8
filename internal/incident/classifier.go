package incident

import (
	"fmt"

	"github.com/charleshss/f1-ai-ml-project/internal/common"
	"github.com/charleshss/f1-ai-ml-project/internal/model"
)

// Roster maps racing numbers to driver identifiers for one session. It is
// derived from session results, so attribution of a structured message is a
// lookup, never a text scan.
type Roster map[int]string

// Classifier maps a single race control message to zero or more incidents by
// evaluating the ordered rule table. It is pure: no state survives between
// calls.
type Classifier struct {
	weights model.SeverityWeights
	rules   []Rule
}

// NewClassifier builds a classifier around the given severity weight table.
func NewClassifier(weights model.SeverityWeights) (*Classifier, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{
		weights: weights,
		rules:   classificationRules(),
	}, nil
}

// MatchKind runs only the pattern stage: the first rule whose predicate
// matches wins. Driver references are assumed present, so conditional rules
// are judged purely on language.
func (c *Classifier) MatchKind(text string) (model.IncidentKind, bool) {
	if IsNoise(text) {
		return "", false
	}
	for _, rule := range c.rules {
		if rule.Match(text, true) {
			return rule.Kind, true
		}
	}
	return "", false
}

// Classify maps one message to its incidents. The returned error is
// common.ErrUnattributedEvent when an incident pattern matched but no driver
// could be identified (a skip, not a failure), or common.ErrMalformedEvent
// for a structurally broken message. Messages matching no rule return
// (nil, nil): explicit noise rejection, not an unknown category.
//
// Attribution policy: a structured DriverNumber resolved through the session
// roster attributes exactly one incident. When the message carries no number,
// the anchored "CAR N (ABC)" form is the only textual fallback, and one
// incident is emitted per distinct referenced driver, so a two-car collision
// report charges both cars.
func (c *Classifier) Classify(msg model.EventMessage, roster Roster) ([]model.Incident, error) {
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedEvent, err)
	}
	if IsNoise(msg.RawText) {
		return nil, nil
	}

	drivers := c.attribute(msg, roster)
	hasDriverRef := len(drivers) > 0

	for _, rule := range c.rules {
		if !rule.Match(msg.RawText, hasDriverRef) {
			continue
		}
		if len(drivers) == 0 {
			return nil, fmt.Errorf("session %s, rule %s: %w",
				msg.SessionID, rule.Name, common.ErrUnattributedEvent)
		}
		incidents := make([]model.Incident, 0, len(drivers))
		for _, driverID := range drivers {
			incidents = append(incidents, model.Incident{
				DriverID:  driverID,
				SessionID: msg.SessionID,
				Kind:      rule.Kind,
				Severity:  c.weights[rule.Kind],
			})
		}
		return incidents, nil
	}

	return nil, nil
}

// attribute resolves the drivers a message refers to. The structured racing
// number always wins; free text is consulted only through the anchored car
// reference, so a numeral in a lap or turn context can never be mistaken for
// a driver.
func (c *Classifier) attribute(msg model.EventMessage, roster Roster) []string {
	if msg.DriverNumber != nil {
		if driverID, ok := roster[*msg.DriverNumber]; ok {
			return []string{driverID}
		}
		// A number the roster does not know cannot be attributed; do not
		// fall back to text for a message the feed already tagged.
		return nil
	}

	matches := reCarRef.FindAllStringSubmatch(msg.RawText, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	drivers := make([]string, 0, len(matches))
	for _, m := range matches {
		abbr := m[2]
		if seen[abbr] {
			continue
		}
		seen[abbr] = true
		drivers = append(drivers, abbr)
	}
	return drivers
}
