package visual

import (
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// SceneBuilder accumulates elements in generation order.  Each pipeline run
// constructs a fresh builder, so concurrent callers never share state.
type SceneBuilder struct {
	elements []emotion.VisualElement
}

// NewSceneBuilder returns an empty builder.
func NewSceneBuilder() *SceneBuilder {
	return &SceneBuilder{}
}

// Append adds elements in order.
func (b *SceneBuilder) Append(elements ...emotion.VisualElement) {
	b.elements = append(b.elements, elements...)
}

// Count returns how many elements of a kind have been appended.
func (b *SceneBuilder) Count(kind emotion.ElementKind) int {
	var n int
	for _, el := range b.elements {
		if el.Kind == kind {
			n++
		}
	}
	return n
}

// Elements returns the accumulated scene in append order.
func (b *SceneBuilder) Elements() []emotion.VisualElement {
	return b.elements
}
