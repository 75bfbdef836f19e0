package render

import (
	"sort"
	"testing"

	"github.com/argosdef/tacmap/track"
	"github.com/stretchr/testify/assert"
)

func TestPriorityOrdering(t *testing.T) {
	selected := track.Object{ID: "sel", Selected: true}
	hovered := track.Object{ID: "hov", Hovered: true, Risk: 3}
	highRisk := track.Object{ID: "risk3", Risk: 3, Status: "LOST"}
	lowRisk := track.Object{ID: "risk1", Risk: 1, Status: "ACTIVE"}
	active := track.Object{ID: "act", Status: "ACTIVE"}
	coasting := track.Object{ID: "coast", Status: "COASTING"}

	objs := []track.Object{coasting, lowRisk, active, highRisk, hovered, selected}
	sort.SliceStable(objs, func(i, j int) bool { return priority(objs[i]) > priority(objs[j]) })

	ids := make([]string, len(objs))
	for i, o := range objs {
		ids[i] = o.ID
	}
	assert.Equal(t, []string{"sel", "hov", "risk3", "risk1", "act", "coast"}, ids)
}

func TestPriorityClampsRisk(t *testing.T) {
	wild := track.Object{Risk: 99}
	capped := track.Object{Risk: 3}
	assert.Equal(t, priority(capped), priority(wild))
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	c := New(nil, nil)
	v := seoulView()
	g := testGrid(v)

	objs := []track.Object{
		{ID: "a", Pos: v.Center, Status: "COASTING"},
		{ID: "b", Pos: v.Center, Selected: true},
	}
	c.Render(v, objs, nil, g, testOptions())
	assert.Equal(t, "a", objs[0].ID, "draw ordering must not reorder the caller's slice")
	assert.Equal(t, "b", objs[1].ID)
}
