package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

// SessionInspector shows the last published snapshot of a session and offers
// buttons that apply actions or restart the game.
type SessionInspector struct {
	session *driver.Session
}

func NewSessionInspector(session *driver.Session) *SessionInspector {
	return &SessionInspector{session: session}
}

func (si *SessionInspector) Render() {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := si.session.Snapshot()
	if snap == nil {
		imgui.Text("No snapshot published")
		imgui.End()
		return
	}

	for _, line := range snapshotFields(snap) {
		imgui.Text(line)
	}

	imgui.Separator()
	for i, a := range tetris.Actions {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.Button(a.String()) {
			si.session.Apply(a)
		}
	}
	if imgui.Button("Restart") {
		if err := si.session.Restart(); err != nil {
			imgui.Text(err.Error())
		}
	}

	if imgui.TreeNodeStr("Grid") {
		imgui.Text(strings.Join(snap.Rows, "\n"))
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Placements") {
		renderPlacements(snap.Stats)
		imgui.TreePop()
	}

	imgui.End()
}

func renderPlacements(stats driver.StatsSnapshot) {
	imgui.Text(fmt.Sprintf("Games: %d  Pieces: %d  Lines: %d", stats.Games, stats.Pieces, stats.Lines))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("KindTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Placed")
		imgui.TableHeadersRow()
		for _, k := range tetris.Kinds {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(k.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", stats.Kinds[k.String()]))
		}
		imgui.EndTable()
	}

	if imgui.BeginTableV("ClearTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Rows cleared")
		imgui.TableSetupColumn("Placements")
		imgui.TableHeadersRow()
		for n, count := range stats.Clears {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", n))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", count))
		}
		imgui.EndTable()
	}
}

// snapshotFields formats the scalar fields of snap as "Name: value" lines in
// declaration order. Slices, maps and nested structs are left to the caller.
func snapshotFields(snap *driver.Snapshot) []string {
	val := reflect.ValueOf(snap).Elem()
	fields := globalReflectionCache.GetFields(val.Type())

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.IsSlice || field.IsMap || field.IsStruct {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %v", field.Name, val.Field(field.Index).Interface()))
	}
	return lines
}
