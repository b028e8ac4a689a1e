package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthrokinetix/akx-engine/pkg/random"
	"github.com/arthrokinetix/akx-engine/pkg/types/article"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

func richProfile() emotion.EmotionalProfile {
	return emotion.EmotionalProfile{
		Journey: emotion.JourneyScores{
			ProblemIntensity:   1.0,
			SolutionConfidence: 2.0,
			InnovationLevel:    1.5,
			HealingPotential:   3.0,
			UncertaintyLevel:   0.5,
		},
		DominantEmotion: emotion.HealingPotential,
		Mix: emotion.MixScores{
			Hope: 1.0, Confidence: 2.0 / 3, Breakthrough: 0.5,
			Healing: 1.0, Tension: 1.0 / 3, Uncertainty: 0.5 / 3,
		},
		EvidenceStrength: 0.8,
		TechnicalDensity: 0.7,
		Subspecialty:     emotion.SportsMedicine,
	}
}

func elementsOfKind(scene []emotion.VisualElement, kind emotion.ElementKind) []emotion.VisualElement {
	var out []emotion.VisualElement
	for _, el := range scene {
		if el.Kind == kind {
			out = append(out, el)
		}
	}
	return out
}

func TestGenerateScene_OneTrunkOneBranchPerSection(t *testing.T) {
	t.Parallel()

	// Constant draws of 0.9 suppress every sub-branch spawn.
	scene := GenerateScene(richProfile(), nil, random.Fixed(0.9))

	trunks := elementsOfKind(scene, emotion.KindAndryTrunk)
	branches := elementsOfKind(scene, emotion.KindAndryBranch)
	require.Len(t, trunks, 1)
	assert.Len(t, branches, 4) // default sections substituted for nil
}

func TestGenerateScene_TrunkHeight(t *testing.T) {
	t.Parallel()

	sections := func(n int) []article.ContentSection {
		out := make([]article.ContentSection, n)
		for i := range out {
			out[i] = article.ContentSection{Importance: 0.5, Complexity: 0.5, EmotionalTone: emotion.Hope}
		}
		return out
	}

	scene := GenerateScene(richProfile(), sections(4), random.Fixed(0.9))
	assert.InDelta(t, 260, elementsOfKind(scene, emotion.KindAndryTrunk)[0].Length, 1e-9)

	scene = GenerateScene(richProfile(), sections(6), random.Fixed(0.9))
	assert.InDelta(t, 300, elementsOfKind(scene, emotion.KindAndryTrunk)[0].Length, 1e-9)
}

func TestGenerateScene_BranchAlternationStaysInArcs(t *testing.T) {
	t.Parallel()

	// Importance 0.5 keeps branches at length 70, below the sub-branch
	// minimum, so every branch element is a primary branch.
	sections := make([]article.ContentSection, 5)
	for i := range sections {
		sections[i] = article.ContentSection{Importance: 0.5, Complexity: 0.5, EmotionalTone: emotion.Hope}
	}

	scene := GenerateScene(richProfile(), sections, random.New(42))
	branches := elementsOfKind(scene, emotion.KindAndryBranch)
	require.Len(t, branches, 5)

	for i, b := range branches {
		if i%2 == 0 {
			assert.GreaterOrEqual(t, b.Angle, 120.0, "branch %d should point left", i)
			assert.LessOrEqual(t, b.Angle, 180.0, "branch %d should point left", i)
		} else {
			assert.GreaterOrEqual(t, b.Angle, 0.0, "branch %d should point right", i)
			assert.LessOrEqual(t, b.Angle, 60.0, "branch %d should point right", i)
		}
	}
}

func TestGenerateScene_SubBranchRule(t *testing.T) {
	t.Parallel()

	profile := richProfile()
	profile.EvidenceStrength = 0 // exactly three roots, two draws each

	sections := []article.ContentSection{
		{Importance: 1.0, Complexity: 1.0, EmotionalTone: emotion.Healing},
	}

	// Draw order: 3 roots × (length, thickness), then branch jitter, spawn
	// check, child position, child deviation.
	src := random.Fixed(
		0.5, 0.5, 0.5, 0.5, 0.5, 0.5, // roots
		0.0, // jitter → angle exactly 150
		0.0, // spawn check, below 0.5 so the child spawns
		0.5, // position → 70% along the parent
		0.5, // deviation → exactly 0
	)

	scene := GenerateScene(profile, sections, src)
	branches := elementsOfKind(scene, emotion.KindAndryBranch)
	require.Len(t, branches, 2)

	parent, child := branches[0], branches[1]
	assert.InDelta(t, 150, parent.Angle, 1e-9)
	assert.InDelta(t, 100, parent.Length, 1e-9)
	assert.InDelta(t, 8, parent.Thickness, 1e-9)

	assert.InDelta(t, 60, child.Length, 1e-9)            // 60% of the parent
	assert.InDelta(t, 5.6, child.Thickness, 1e-9)        // 70% of the parent
	assert.InDelta(t, 150, child.Angle, 1e-9)            // zero deviation
	assert.InDelta(t, subBranchIntensity, child.Intensity, 1e-9)

	// 70% along a 150° parent from base (400, 580).
	assert.InDelta(t, 339.378, child.X, 1e-3)
	assert.InDelta(t, 545, child.Y, 1e-9)
}

func TestGenerateScene_DeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a := GenerateScene(richProfile(), nil, random.New(7))
	b := GenerateScene(richProfile(), nil, random.New(7))
	assert.Equal(t, a, b)
}

func TestGenerateScene_LayerOrderPreserved(t *testing.T) {
	t.Parallel()

	scene := GenerateScene(richProfile(), nil, random.New(1))

	layerIndex := make(map[emotion.ElementKind]int, len(emotion.LayerOrder))
	for i, kind := range emotion.LayerOrder {
		layerIndex[kind] = i
	}

	last := -1
	for _, el := range scene {
		idx, ok := layerIndex[el.Kind]
		require.True(t, ok, "unknown kind %q", el.Kind)
		assert.GreaterOrEqual(t, idx, last)
		if idx > last {
			last = idx
		}
	}
	// The rich profile exercises every layer, grid included.
	assert.Equal(t, len(emotion.LayerOrder)-1, last)
}

func TestColorFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#143601", ColorFor(emotion.Healing, 0))
	assert.Equal(t, "#aad576", ColorFor(emotion.Healing, 1))
	assert.Equal(t, ColorFor(emotion.Hope, 0.5), ColorFor(emotion.Emotion("bogus"), 0.5))
}

func TestNormalizeSections_FillsMissingFields(t *testing.T) {
	t.Parallel()

	out := normalizeSections([]article.ContentSection{{Title: "Bare"}})
	require.Len(t, out, 1)
	assert.InDelta(t, 0.5, out[0].Importance, 1e-9)
	assert.InDelta(t, 0.5, out[0].Complexity, 1e-9)
	assert.Equal(t, emotion.Hope, out[0].EmotionalTone)
}
