package emotion

// ElementKind tags one of the ten visual element variants in the Andry Tree
// scene graph.
type ElementKind string

const (
	KindAndryTrunk          ElementKind = "andryTrunk"
	KindAndryBranch         ElementKind = "andryBranch"
	KindAndryRoot           ElementKind = "andryRoot"
	KindHealingParticle     ElementKind = "healingParticle"
	KindHealingAura         ElementKind = "healingAura"
	KindDataFlow            ElementKind = "dataFlow"
	KindEmotionalField      ElementKind = "emotionalField"
	KindResearchStar        ElementKind = "researchStar"
	KindAtmosphericParticle ElementKind = "atmosphericParticle"
	KindPrecisionGrid       ElementKind = "precisionGrid"
)

// LayerOrder is the compositing order the renderer must honour.  Scene
// generation appends elements phase by phase in exactly this kind sequence,
// so a renderer that draws the element list in order gets correct layering
// for free.
var LayerOrder = []ElementKind{
	KindAndryRoot,
	KindAndryTrunk,
	KindAndryBranch,
	KindHealingParticle,
	KindHealingAura,
	KindDataFlow,
	KindEmotionalField,
	KindResearchStar,
	KindAtmosphericParticle,
	KindPrecisionGrid,
}

// Point is a 2D coordinate in scene space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// VisualElement is one node of the generated scene graph.  Kind selects the
// variant; every variant carries a position and a color, and the geometry
// fields that apply depend on the kind:
//
//	andryTrunk / andryBranch / andryRoot  — Angle, Length, Thickness
//	healingParticle / healingAura         — Radius
//	dataFlow                              — Path (4-point cubic Bezier)
//	emotionalField                        — Radius, Opacity
//	researchStar / atmosphericParticle    — Radius (render size)
//	precisionGrid                         — Length (cell size), Opacity
//
// Elements are immutable once generated.
type VisualElement struct {
	Kind  ElementKind `json:"kind"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Color string      `json:"color"`

	Emotion   Emotion `json:"emotion,omitempty"`
	Intensity float64 `json:"intensity,omitempty"`

	Angle     float64 `json:"angle,omitempty"`
	Length    float64 `json:"length,omitempty"`
	Thickness float64 `json:"thickness,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	Opacity   float64 `json:"opacity,omitempty"`
	Path      []Point `json:"path,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// EmotionalSignature
// ─────────────────────────────────────────────────────────────────────────────

// ConcentricRings describes the ring system of a signature overlay.
type ConcentricRings struct {
	Count         int     `json:"count"`
	Thickness     float64 `json:"thickness"`
	RotationSpeed float64 `json:"rotationSpeed"`
}

// GeometricOverlay describes the central shape of a signature overlay.
type GeometricOverlay struct {
	Shape string  `json:"shape"`
	Color string  `json:"color"`
	Scale float64 `json:"scale"`
}

// FloatingParticles describes the particle cloud of a signature overlay.
type FloatingParticles struct {
	Count           int    `json:"count"`
	Color           string `json:"color"`
	MovementPattern string `json:"movementPattern"`
}

// GradientStop is one stop of the signature color gradient.
type GradientStop struct {
	Color   string  `json:"color"`
	Stop    float64 `json:"stop"`
	Opacity float64 `json:"opacity"`
}

// EmotionalSignature is the companion overlay derived once per profile.
// All components except the id's hex suffix are pure functions of the
// profile, so re-deriving from a stored profile reproduces them exactly.
type EmotionalSignature struct {
	ID                string            `json:"id"`
	ConcentricRings   ConcentricRings   `json:"concentricRings"`
	GeometricOverlay  GeometricOverlay  `json:"geometricOverlay"`
	FloatingParticles FloatingParticles `json:"floatingParticles"`
	ColorGradient     []GradientStop    `json:"colorGradient"`
	RarityScore       float64           `json:"rarityScore"`
}
