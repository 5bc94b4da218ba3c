package game

import "github.com/adityarawat/manch-ui/internal/models"

// Content tables for the Chunav Challenge game. All tables are static and
// read-only; lookups for unknown ids return zero values and callers are
// expected to redirect to a safe stage instead of failing.

// Metrics returns the five scored campaign dimensions in fixed order
func Metrics() []models.Metric {
	return []models.Metric{
		{ID: models.MetricVoteBank, Label: "Vote Bank", Color: "bg-orange-100 border-orange-300"},
		{ID: models.MetricYouthAppeal, Label: "Youth Appeal", Color: "bg-blue-100 border-blue-300"},
		{ID: models.MetricWomenVoters, Label: "Women Voters", Color: "bg-pink-100 border-pink-300"},
		{ID: models.MetricCredibility, Label: "Credibility", Color: "bg-green-100 border-green-300"},
		{ID: models.MetricMomentum, Label: "Momentum", Color: "bg-purple-100 border-purple-300"},
	}
}

// MetricIDs returns the metric identifiers in table order
func MetricIDs() []models.MetricID {
	metrics := Metrics()
	ids := make([]models.MetricID, len(metrics))
	for i, m := range metrics {
		ids[i] = m.ID
	}
	return ids
}

// Candidates returns the playable candidate roster
func Candidates() []models.Candidate {
	return []models.Candidate{
		{
			ID:         "nitish-kumar",
			Name:       "Nitish Kumar",
			Party:      "Janata Dal (United)",
			PartyShort: "JD(U)",
			Tagline:    "The seasoned administrator banking on governance record",
			Slogan:     "Sushasan ke saath, phir ek baar",
			Avatar:     "/images/nitish-kumar.png",
			Color:      "bg-green-100 border-green-300",
		},
		{
			ID:         "tejashwi-yadav",
			Name:       "Tejashwi Yadav",
			Party:      "Rashtriya Janata Dal",
			PartyShort: "RJD",
			Tagline:    "The young challenger promising jobs and change",
			Slogan:     "Naukri do, Bihar badlo",
			Avatar:     "/images/tejashwi-yadav.png",
			Color:      "bg-green-100 border-emerald-300",
		},
		{
			ID:         "prashant-kishor",
			Name:       "Prashant Kishor",
			Party:      "Jan Suraaj",
			PartyShort: "JS",
			Tagline:    "The strategist turned outsider building from the ground up",
			Slogan:     "Sahi log, sahi soch, samuhik prayas",
			Avatar:     "/images/prashant-kishor.png",
			Color:      "bg-yellow-100 border-yellow-300",
		},
	}
}

// CandidateByID looks up a candidate by id
func CandidateByID(id string) (models.Candidate, bool) {
	for _, c := range Candidates() {
		if c.ID == id {
			return c, true
		}
	}
	return models.Candidate{}, false
}

// QuestionsFor returns the ordered question list for a candidate.
// Unknown candidate ids yield an empty list.
func QuestionsFor(candidateID string) []models.Question {
	return questionTable[candidateID]
}

var questionTable = map[string][]models.Question{
	"nitish-kumar": {
		{
			Situation: "A flood hits north Bihar two months before polling. Relief camps are overwhelmed and the opposition blames your administration.",
			Options: []models.Option{
				{
					Text:    "Camp in the flooded districts and personally supervise relief",
					Effects: map[models.MetricID]int{models.MetricCredibility: 12, models.MetricMomentum: 8, models.MetricYouthAppeal: -2},
				},
				{
					Text:    "Announce a large compensation package from Patna",
					Effects: map[models.MetricID]int{models.MetricVoteBank: 8, models.MetricCredibility: -4},
				},
				{
					Text:    "Blame the centre for delayed funds",
					Effects: map[models.MetricID]int{models.MetricMomentum: 4, models.MetricCredibility: -8},
				},
			},
		},
		{
			Situation: "Your flagship bicycle-and-uniform scheme for schoolgirls is praised nationally, but teachers are striking over unpaid salaries.",
			Options: []models.Option{
				{
					Text:    "Clear the salary arrears before expanding the scheme",
					Effects: map[models.MetricID]int{models.MetricCredibility: 10, models.MetricWomenVoters: 4, models.MetricMomentum: -2},
				},
				{
					Text:    "Double down and extend the scheme to college students",
					Effects: map[models.MetricID]int{models.MetricWomenVoters: 12, models.MetricYouthAppeal: 6, models.MetricCredibility: -6},
				},
			},
		},
		{
			Situation: "A long-time coalition partner demands twenty more seats, threatening to walk out mid-campaign.",
			Options: []models.Option{
				{
					Text:    "Concede a few seats quietly and keep the alliance intact",
					Effects: map[models.MetricID]int{models.MetricVoteBank: 10, models.MetricMomentum: -4},
				},
				{
					Text:    "Call their bluff and prepare to contest alone",
					Effects: map[models.MetricID]int{models.MetricCredibility: 6, models.MetricMomentum: 6, models.MetricVoteBank: -8},
				},
				{
					Text:    "Leak the demand to the press to build public pressure",
					Effects: map[models.MetricID]int{models.MetricMomentum: 8, models.MetricCredibility: -10},
				},
			},
		},
		{
			Situation: "Prohibition enforcement is under fire after a hooch tragedy. Women's groups backed the ban; critics call it a failed policy.",
			Options: []models.Option{
				{
					Text:    "Tighten enforcement and fast-track the victims' cases",
					Effects: map[models.MetricID]int{models.MetricWomenVoters: 10, models.MetricCredibility: 6, models.MetricYouthAppeal: -4},
				},
				{
					Text:    "Promise a review of the policy after the election",
					Effects: map[models.MetricID]int{models.MetricYouthAppeal: 6, models.MetricWomenVoters: -8},
				},
			},
		},
		{
			Situation: "On the eve of polling, an old video of you praising a rival resurfaces and trends overnight.",
			Options: []models.Option{
				{
					Text:    "Laugh it off in a press conference and pivot to your record",
					Effects: map[models.MetricID]int{models.MetricCredibility: 8, models.MetricMomentum: 6},
				},
				{
					Text:    "Ignore it and let the news cycle move on",
					Effects: map[models.MetricID]int{models.MetricMomentum: -4},
				},
				{
					Text:    "Accuse the rival camp of a doctored clip",
					Effects: map[models.MetricID]int{models.MetricVoteBank: 4, models.MetricCredibility: -6},
				},
			},
		},
	},
	"tejashwi-yadav": {
		{
			Situation: "You promised ten lakh government jobs in your first cabinet meeting. Economists question where the money will come from.",
			Options: []models.Option{
				{
					Text:    "Publish a costed roadmap with phased recruitment",
					Effects: map[models.MetricID]int{models.MetricCredibility: 12, models.MetricYouthAppeal: 6},
				},
				{
					Text:    "Dismiss the critics as establishment voices",
					Effects: map[models.MetricID]int{models.MetricMomentum: 6, models.MetricCredibility: -8},
				},
			},
		},
		{
			Situation: "A senior leader from your party makes a casteist remark at a rally and the clip goes viral.",
			Options: []models.Option{
				{
					Text:    "Suspend the leader the same evening",
					Effects: map[models.MetricID]int{models.MetricCredibility: 10, models.MetricWomenVoters: 4, models.MetricVoteBank: -6},
				},
				{
					Text:    "Call it a slip of the tongue and move on",
					Effects: map[models.MetricID]int{models.MetricVoteBank: 6, models.MetricCredibility: -10},
				},
				{
					Text:    "Counter with a speech on social justice for all",
					Effects: map[models.MetricID]int{models.MetricMomentum: 8, models.MetricYouthAppeal: 4, models.MetricCredibility: -2},
				},
			},
		},
		{
			Situation: "Your cricket past is mocked in a rival's campaign song calling you a dropped opener.",
			Options: []models.Option{
				{
					Text:    "Play a charity match in Patna and own the story",
					Effects: map[models.MetricID]int{models.MetricYouthAppeal: 12, models.MetricMomentum: 8},
				},
				{
					Text:    "File a complaint with the election commission",
					Effects: map[models.MetricID]int{models.MetricCredibility: 2, models.MetricYouthAppeal: -6},
				},
			},
		},
		{
			Situation: "Women self-help groups ask for a concrete safety manifesto, recalling law-and-order fears from an earlier era.",
			Options: []models.Option{
				{
					Text:    "Release a women's safety charter with named accountability",
					Effects: map[models.MetricID]int{models.MetricWomenVoters: 12, models.MetricCredibility: 6},
				},
				{
					Text:    "Promise reservation in state jobs for women instead",
					Effects: map[models.MetricID]int{models.MetricWomenVoters: 6, models.MetricVoteBank: 4, models.MetricCredibility: -4},
				},
				{
					Text:    "Say the past is the past and talk about the future",
					Effects: map[models.MetricID]int{models.MetricYouthAppeal: 4, models.MetricWomenVoters: -8},
				},
			},
		},
		{
			Situation: "An exit-poll leak on the last day of campaigning shows you trailing in your own constituency.",
			Options: []models.Option{
				{
					Text:    "Hold a massive roadshow in the constituency",
					Effects: map[models.MetricID]int{models.MetricMomentum: 10, models.MetricVoteBank: 6, models.MetricCredibility: -2},
				},
				{
					Text:    "Dismiss the leak and campaign elsewhere as planned",
					Effects: map[models.MetricID]int{models.MetricCredibility: 4, models.MetricMomentum: -6},
				},
			},
		},
	},
	"prashant-kishor": {
		{
			Situation: "After your 3000-km padyatra, the press asks whether a consultant can really become a grassroots leader.",
			Options: []models.Option{
				{
					Text:    "Point to the village committees built along the route",
					Effects: map[models.MetricID]int{models.MetricCredibility: 10, models.MetricVoteBank: 4},
				},
				{
					Text:    "Embrace the label: strategy is what Bihar lacks",
					Effects: map[models.MetricID]int{models.MetricYouthAppeal: 8, models.MetricMomentum: 4, models.MetricVoteBank: -4},
				},
			},
		},
		{
			Situation: "Both big alliances offer you a respectable seat-share to merge your outfit before nominations close.",
			Options: []models.Option{
				{
					Text:    "Refuse publicly and contest every seat alone",
					Effects: map[models.MetricID]int{models.MetricCredibility: 12, models.MetricMomentum: 8, models.MetricVoteBank: -8},
				},
				{
					Text:    "Negotiate quietly while denying talks",
					Effects: map[models.MetricID]int{models.MetricVoteBank: 8, models.MetricCredibility: -12},
				},
			},
		},
		{
			Situation: "Your candidate list is praised for teachers and doctors but has fewer women than you promised.",
			Options: []models.Option{
				{
					Text:    "Rework the list and drop sitting men for women candidates",
					Effects: map[models.MetricID]int{models.MetricWomenVoters: 12, models.MetricCredibility: 6, models.MetricVoteBank: -4},
				},
				{
					Text:    "Promise half the ticket share next election",
					Effects: map[models.MetricID]int{models.MetricWomenVoters: -6, models.MetricCredibility: -2},
				},
				{
					Text:    "Highlight the professional profile of the list instead",
					Effects: map[models.MetricID]int{models.MetricYouthAppeal: 8, models.MetricWomenVoters: -2},
				},
			},
		},
		{
			Situation: "A viral reel of your town-hall answer on migration gets two crore views among young voters.",
			Options: []models.Option{
				{
					Text:    "Launch weekly town-halls in every district headquarters",
					Effects: map[models.MetricID]int{models.MetricYouthAppeal: 12, models.MetricMomentum: 8},
				},
				{
					Text:    "Stay the course; reels do not win booths",
					Effects: map[models.MetricID]int{models.MetricVoteBank: 6, models.MetricYouthAppeal: -4},
				},
			},
		},
		{
			Situation: "Old clients from your consulting days start attacking you, claiming credit for the victories you managed.",
			Options: []models.Option{
				{
					Text:    "Release the campaign playbooks and let the work speak",
					Effects: map[models.MetricID]int{models.MetricCredibility: 8, models.MetricMomentum: 6},
				},
				{
					Text:    "Return fire with what you know about their campaigns",
					Effects: map[models.MetricID]int{models.MetricMomentum: 8, models.MetricCredibility: -10},
				},
				{
					Text:    "Refuse to discuss former clients at all",
					Effects: map[models.MetricID]int{models.MetricCredibility: 4, models.MetricMomentum: -4},
				},
			},
		},
	},
}
