package lambda

import "github.com/klauern/vita-go/pkg/gp/primitive"

// VotingPolicy selects how a Team aggregates its members' predictions
// (spec.md §4.8).
type VotingPolicy int

const (
	MajorityVoting VotingPolicy = iota
	WinnerTakesAll
)

// Team composes several classifier Models into one.
type Team struct {
	members []Model
	policy  VotingPolicy
}

func NewTeam(members []Model, policy VotingPolicy) *Team {
	return &Team{members: members, policy: policy}
}

func (t *Team) Predict(input []primitive.Value) Prediction {
	preds := make([]Prediction, len(t.members))
	for i, m := range t.members {
		preds[i] = m.Predict(input)
	}

	if t.policy == WinnerTakesAll {
		best := preds[0]
		for _, p := range preds[1:] {
			if p.Confidence > best.Confidence {
				best = p
			}
		}
		return best
	}

	votes := make(map[int]int)
	for _, p := range preds {
		votes[p.Class]++
	}

	bestClass, bestVotes := 0, -1
	for class, count := range votes {
		if count > bestVotes || (count == bestVotes && class < bestClass) {
			bestClass, bestVotes = class, count
		}
	}

	label := ""
	for _, p := range preds {
		if p.Class == bestClass {
			label = p.Label
			break
		}
	}

	return Prediction{
		Class:      bestClass,
		Label:      label,
		Confidence: float64(bestVotes) / float64(len(preds)),
	}
}
