package ai

import "media-journal/models"

// Canned material served in mock mode. Selection is by content hash, so the
// same input always yields the same output.

var mockSummaries = []string{
	"Deeply immersed in the work's setting, with strong empathy for the characters' growth; the protagonist's inner conflict and decisions stand out.",
	"Struck by the harmony of the work's visuals and music, with key scenes' staging leaving a lasting impression.",
	"Focused on the story's foreshadowing and structure, reading for the author's intent, especially in the buildup to the ending.",
	"Attentive to the relationships and dialogue between characters, moved in particular by the reconciliation between opposing figures.",
}

const mockAnalysis = `The hidden theme of this work is self-sacrifice and redemption. On the surface it reads as a story of adventure and conflict, but the protagonist's actions are consistently rooted in a willingness to give themselves up for others.

Three points deserve attention:

1. The protagonist's choice in the final confrontation trades their own life for the world's survival, the culmination of the question the work keeps asking about what real strength is.

2. The supporting characters grow along the same axis of sacrifice and love for others; the close friend's decision in the second act shapes everything that follows.

3. The ending looks happy at first glance, but it quietly registers the scale of what the protagonist lost, hinting that redemption always carries a cost.

The question of why the protagonist made that final choice connects directly to this hidden theme: for them, self-sacrifice was not a virtue but the way they confirmed their own reason to exist.`

const mockAnalysisSociety = `The work also digs into the relationship between the individual and society: how the protagonist's choices ripple outward, and how society's expectations press back on them.`

const mockAnalysisCraft = `The art direction and music reinforce the theme as well; the use of color and the musical choices in the pivotal scenes speak directly to the viewer's emotions.`

func mockRelatedWorks() []models.RelatedWorkInput {
	creator1 := "Hayao Miyazaki"
	desc1 := "A story of self-sacrifice and growth: Chihiro fights through another world to save her parents."
	url1 := "https://example.com/spirited-away"
	creator2 := "Hajime Isayama"
	desc2 := "A work questioning the meaning of freedom and sacrifice through Eren's choices and their cost."
	url2 := "https://example.com/attack-on-titan"
	return []models.RelatedWorkInput{
		{Title: "Spirited Away", Creator: &creator1, Description: &desc1, URL: &url1},
		{Title: "Attack on Titan", Creator: &creator2, Description: &desc2, URL: &url2},
	}
}
