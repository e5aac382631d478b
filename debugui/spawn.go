package debugui

import "github.com/plus3/blockfall/driver"

// Install registers the session inspector and performance windows on a new
// ImguiSystem and adds the system to scheduler. It should be registered
// after the systems it observes.
func Install(scheduler *driver.Scheduler) *ImguiSystem {
	system := &ImguiSystem{}
	inspector := NewSessionInspector(scheduler.Session())
	perf := NewPerformanceStats(scheduler, 120)
	timer := NewFrameTimer()

	system.Add(inspector.Render)
	system.Add(func() { perf.Render(timer.GetDeltaTime()) })
	scheduler.Register(system)
	return system
}
