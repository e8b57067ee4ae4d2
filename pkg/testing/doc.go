// Package testing provides test doubles for clockface packages.
//
// [FakeClock] replaces the animation clock so sweeps and time reads can be
// stepped deterministically:
//
//	clk := clocktest.InstallClock(t, clocktest.NewFakeClock())
//	clk.Advance(250 * time.Millisecond)
//	animation.StepTickers()
//
// [Canvas] records drawing calls as [DisplayOp] values for assertions:
//
//	canvas := clocktest.NewCanvas(graphics.Size{Width: 200, Height: 200})
//	painter.Paint(canvas, state)
//	lines := canvas.OpsNamed("drawLine")
//
// [Snapshot] compares a recorded frame against a golden JSON file. Set
// CLOCKFACE_UPDATE_SNAPSHOTS=1 to rewrite the golden files:
//
//	clocktest.CaptureSnapshot(list).MatchesFile(t, "testdata/face.snapshot.json")
package testing
