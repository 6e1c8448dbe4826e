package evaluator

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"interviewer/internal/domain"
)

// Component weights for the final score. They must sum to 1.0; anyone
// changing one must re-normalize the rest.
const (
	lengthWeight      = 0.20
	structureWeight   = 0.25
	specificityWeight = 0.25
	relevanceWeight   = 0.30
)

// starFamilies are the STAR-method keyword families checked during
// structure analysis, in trace order.
var starFamilies = []struct {
	name     string
	keywords []string
}{
	{"situation", []string{"situation", "context", "background", "when", "where"}},
	{"task", []string{"task", "challenge", "problem", "objective", "goal"}},
	{"action", []string{"action", "did", "implemented", "developed", "created", "led"}},
	{"result", []string{"result", "outcome", "achieved", "improved", "increased", "decreased"}},
}

// specificityPatterns are the concrete-detail detectors. The technology
// pattern matches known names case-insensitively but keeps the
// capitalized-two-word alternative case-sensitive, since lowercased word
// pairs carry no signal.
var specificityPatterns = []struct {
	re          *regexp.Regexp
	description string
}{
	{regexp.MustCompile(`(?i)\d+%`), "percentages/metrics"},
	{regexp.MustCompile(`(?i)\d+\s*(months?|years?|weeks?|days?)`), "timeframes"},
	{regexp.MustCompile(`(?i)(\$\d+|revenue|cost|budget)`), "financial metrics"},
	{regexp.MustCompile(`(?i)(increased|decreased|improved|reduced)\s+\w+\s+by`), "quantifiable improvements"},
	{regexp.MustCompile(`(?i:react|python|java|sql|aws|docker|kubernetes)|[A-Z][a-z]+\s+[A-Z][a-z]+`), "specific technologies/methods"},
}

var (
	wordRe = regexp.MustCompile(`\w+`)

	relevanceStopwords = map[string]struct{}{
		"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
		"in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	}
)

// Evaluate scores a free-text interview response against its question
// through four independent analyses (length, STAR structure, specificity,
// keyword relevance) and combines them with fixed weights. The reasoning
// trace records every step for transparency. It is a pure function:
// identical inputs produce identical results, and no input is ever
// rejected — an empty response simply scores at the floor. The job
// context parameter is part of the contract for future criteria; the
// current heuristics do not consult it.
func Evaluate(question, response string, jobCtx *domain.JobContext) domain.Evaluation {
	eval := domain.Evaluation{
		Strengths:    []string{},
		Improvements: []string{},
	}
	var trace []string

	// Step 1: length
	wordCount := len(strings.Fields(response))
	trace = append(trace, fmt.Sprintf("Step 1 - Length Analysis: Response contains %d words.", wordCount))
	var lengthScore float64
	switch {
	case wordCount >= 100:
		lengthScore = 100
		eval.Strengths = append(eval.Strengths, fmt.Sprintf("Comprehensive response with %d words", wordCount))
		trace = append(trace, "→ Excellent length, provides detailed information")
	case wordCount >= 50:
		lengthScore = 70
		trace = append(trace, "→ Good length, could add more detail")
	case wordCount >= 20:
		lengthScore = 40
		eval.Improvements = append(eval.Improvements, "Expand your response with more details and examples")
		trace = append(trace, "→ Response is brief, needs more elaboration")
	default:
		lengthScore = 20
		eval.Improvements = append(eval.Improvements, "Response is too short - aim for 50+ words")
		trace = append(trace, "→ Response is very brief, significantly expand your answer")
	}

	// Step 2: STAR structure
	trace = append(trace, "\nStep 2 - Structure Analysis: Checking for clear organization...")
	responseLower := strings.ToLower(response)
	structureScore := 0.0
	var found []string
	for _, family := range starFamilies {
		for _, kw := range family.keywords {
			if strings.Contains(responseLower, kw) {
				structureScore += 25
				found = append(found, strings.ToUpper(family.name))
				break
			}
		}
	}
	switch {
	case structureScore >= 75:
		eval.Strengths = append(eval.Strengths, fmt.Sprintf("Well-structured answer using %s components", strings.Join(found, ", ")))
		trace = append(trace, fmt.Sprintf("→ Found %d/4 STAR components: %s", len(found), strings.Join(found, ", ")))
	case structureScore >= 50:
		var missing []string
		for _, family := range starFamilies {
			name := strings.ToUpper(family.name)
			if !contains(found, name) {
				missing = append(missing, name)
			}
		}
		eval.Improvements = append(eval.Improvements, fmt.Sprintf("Consider adding %s to strengthen structure", strings.Join(missing, ", ")))
		trace = append(trace, fmt.Sprintf("→ Partial structure detected, missing: %s", strings.Join(missing, ", ")))
	default:
		eval.Improvements = append(eval.Improvements, "Use STAR method: Situation, Task, Action, Result")
		trace = append(trace, "→ Lacks clear structure, recommend STAR framework")
	}

	// Step 3: specificity
	trace = append(trace, "\nStep 3 - Specificity Analysis: Checking for concrete examples...")
	var specifics []string
	for _, p := range specificityPatterns {
		if p.re.MatchString(response) {
			specifics = append(specifics, p.description)
		}
	}
	specificityScore := math.Min(float64(len(specifics))*25, 100)
	switch {
	case specificityScore >= 75:
		top := specifics
		if len(top) > 3 {
			top = top[:3]
		}
		eval.Strengths = append(eval.Strengths, fmt.Sprintf("Included specific details: %s", strings.Join(top, ", ")))
		trace = append(trace, fmt.Sprintf("→ Strong specificity with: %s", strings.Join(specifics, ", ")))
	case specificityScore >= 50:
		trace = append(trace, fmt.Sprintf("→ Some specifics found: %s", strings.Join(specifics, ", ")))
	default:
		eval.Improvements = append(eval.Improvements, "Add specific examples, numbers, or technologies used")
		trace = append(trace, "→ Lacks concrete examples and metrics")
	}

	// Step 4: relevance
	trace = append(trace, "\nStep 4 - Relevance Analysis: Assessing alignment with question...")
	questionWords := contentWords(question)
	responseWords := contentWordsRaw(response)
	overlapCount := 0
	for w := range questionWords {
		if _, ok := responseWords[w]; ok {
			overlapCount++
		}
	}
	denom := len(questionWords)
	if denom < 1 {
		denom = 1
	}
	overlap := float64(overlapCount) / float64(denom)
	relevanceScore := math.Min(overlap*150, 100)
	switch {
	case relevanceScore >= 70:
		eval.Strengths = append(eval.Strengths, "Response directly addresses the question")
		trace = append(trace, fmt.Sprintf("→ High relevance: %.1f%% keyword alignment", overlap*100))
	case relevanceScore >= 50:
		trace = append(trace, fmt.Sprintf("→ Moderate relevance: %.1f%% keyword alignment", overlap*100))
	default:
		eval.Improvements = append(eval.Improvements, "Ensure response directly addresses all parts of the question")
		trace = append(trace, fmt.Sprintf("→ Low relevance: %.1f%% keyword alignment - refocus answer", overlap*100))
	}

	final := lengthScore*lengthWeight +
		structureScore*structureWeight +
		specificityScore*specificityWeight +
		relevanceScore*relevanceWeight

	eval.Score = int(math.Round(final))
	eval.Reasoning = strings.Join(trace, "\n")
	eval.OverallAssessment = assessment(final)

	// Strictly below 70 before rounding; 70.0 exactly gets no follow-up.
	if final < 70 {
		eval.FollowUp = followUp(eval.Improvements)
	}
	return eval
}

// assessment maps the pre-rounding score onto its feedback band.
func assessment(score float64) string {
	switch {
	case score >= 80:
		return "Excellent response! Strong across all criteria."
	case score >= 70:
		return "Good response with minor areas for improvement."
	case score >= 60:
		return "Satisfactory response, but needs strengthening."
	case score >= 50:
		return "Adequate foundation, significant improvement needed."
	default:
		return "Response needs major improvement in multiple areas."
	}
}

// followUp picks one follow-up question from the accumulated improvement
// strings; the first matching rule wins.
func followUp(improvements []string) string {
	joined := strings.ToLower(strings.Join(improvements, "\n"))
	switch {
	case strings.Contains(joined, "example") || strings.Contains(joined, "specific"):
		return "Can you provide a specific example with measurable results?"
	case strings.Contains(joined, "structure") || strings.Contains(joined, "star"):
		return "Can you walk me through the situation, your specific actions, and the results?"
	case strings.Contains(joined, "detail"):
		return "Can you elaborate on that with more context and details?"
	default:
		return "Is there anything else you'd like to add to strengthen your answer?"
	}
}

// contentWords tokenizes lowercased text with stopwords removed.
func contentWords(text string) map[string]struct{} {
	words := contentWordsRaw(text)
	for w := range relevanceStopwords {
		delete(words, w)
	}
	return words
}

func contentWordsRaw(text string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
