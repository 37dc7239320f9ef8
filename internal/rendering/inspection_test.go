package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fire-protocols/internal/types"
)

func runsText(runs []types.Run) string {
	return types.Block{Runs: runs}.Text()
}

func boldTexts(runs []types.Run) []string {
	var out []string
	for _, r := range runs {
		if r.Bold {
			out = append(out, r.Text)
		}
	}
	return out
}

func TestLadderInspection_SingleCleanLadderIsUnnamed(t *testing.T) {
	sentences := ladderInspection(testVertical(testLadder(1, "", "5")))
	require.Len(t, sentences, 1)
	assert.Equal(t,
		"Внешние повреждения не обнаружены, следы нарушения крепления к стене не обнаружены, "+
			"нарушение сварных швов не обнаружено, защитное покрытие требованиям ГОСТ 9.302 соответствует.",
		runsText(sentences[0]))
	assert.Empty(t, boldTexts(sentences[0]))
}

func TestLadderInspection_SingleDefectiveLadderIsNamed(t *testing.T) {
	l := testLadder(1, "Лестница у склада", "5")
	l.WeldViolationFound = true
	l.PaintCompliant = false

	sentences := ladderInspection(testVertical(l))
	require.Len(t, sentences, 1)
	assert.Equal(t,
		"Лестница у склада: внешние повреждения не обнаружены, следы нарушения крепления к стене не обнаружены, "+
			"нарушение сварных швов обнаружено, защитное покрытие требованиям ГОСТ 9.302 не соответствует.",
		runsText(sentences[0]))
	assert.Equal(t, []string{
		"Лестница у склада",
		"нарушение сварных швов обнаружено",
		"защитное покрытие требованиям ГОСТ 9.302 не соответствует",
	}, boldTexts(sentences[0]))
}

func TestLadderInspection_GroupsIdenticalResults(t *testing.T) {
	damaged := testLadder(2, "", "5")
	damaged.DamageFound = true
	r := testVertical(
		testLadder(3, "", "5"),
		damaged,
		testLadder(1, "Северная", "5"),
	)

	sentences := ladderInspection(r)
	require.Len(t, sentences, 2)

	assert.Equal(t, "Северная, №3", sentences[0][0].Text)
	assert.True(t, sentences[0][0].Bold)
	assert.Contains(t, runsText(sentences[0]), ": внешние повреждения не обнаружены")

	assert.Equal(t, "Лестница №2", sentences[1][0].Text)
	assert.Contains(t, boldTexts(sentences[1]), "внешние повреждения обнаружены")
}

func TestGroupLadders_FirstAppearanceOrder(t *testing.T) {
	bad := types.Inspection{MountViolationFound: true, PaintCompliant: true}
	ok := types.Inspection{PaintCompliant: true}
	ladders := []types.LadderSpec{
		{Inspection: bad}, {Inspection: ok}, {Inspection: bad}, {Inspection: ok},
	}

	groups := groupLadders(ladders)
	require.Len(t, groups, 2)
	assert.Equal(t, bad, groups[0].result)
	assert.Equal(t, []int{0, 2}, groups[0].indexes)
	assert.Equal(t, []int{1, 3}, groups[1].indexes)
}

func TestStairInspectionWording(t *testing.T) {
	r := testStair()
	r.MountViolationFound = true
	doc := compose(t, r)

	texts := sectionText(doc, types.SectionInspection)
	require.Len(t, texts, 1)
	assert.Equal(t,
		"Внешние повреждения конструкций лестницы не обнаружены, следы нарушения крепления конструкции лестницы "+
			"к стене здания обнаружены, нарушение сварных швов не обнаружено, защитное покрытие требованиям ГОСТ 9.302 соответствует.",
		texts[0])
}
