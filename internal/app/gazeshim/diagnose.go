package gazeshim

import (
	"fmt"
	"io"
	"time"

	"github.com/moeilijk/gaze-shim/internal/gaze"
)

// Diagnose runs the hardware session gate standalone, without a VR host:
// it brings up the tracker bridge, reports the headset identity verdict and
// dumps a short burst of transformed samples. Used by cmd/gazecheck.
func Diagnose(w io.Writer, samples int, interval time.Duration) error {
	svc, kill, err := startTrackerClient()
	if err != nil {
		return fmt.Errorf("tracker service: %w", err)
	}
	defer kill()

	session, err := svc.CreateSession()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer svc.DestroySession(session)

	info, err := svc.HmdInfo(session)
	if err != nil {
		return fmt.Errorf("headset identity: %w", err)
	}

	verdict := "unsupported"
	if isSupportedHeadset(info) {
		verdict = supportedProducts[info.ProductID]
	}
	fmt.Fprintf(w, "headset %04x:%04x serial %q: %s\n", info.VendorID, info.ProductID, info.Serial, verdict)

	for i := 0; i < samples; i++ {
		time.Sleep(interval)

		now, err := svc.TimeSeconds()
		if err != nil {
			return fmt.Errorf("tracker time: %w", err)
		}
		eye, err := svc.EyeTrackingInfo(session, now)
		if err != nil {
			return fmt.Errorf("eye tracking info: %w", err)
		}

		p := gaze.Transform(gaze.Sample{
			OK:          true,
			TimeSeconds: eye.TimeSeconds,
			Left:        [2]float64{eye.GazeTan[0].X, eye.GazeTan[0].Y},
			Right:       [2]float64{eye.GazeTan[1].X, eye.GazeTan[1].Y},
		})
		fmt.Fprintf(w, "t=%9.3f valid=%-5v dir=(%+.3f %+.3f %+.3f)\n",
			eye.TimeSeconds, p.Valid, p.Direction[0], p.Direction[1], p.Direction[2])
	}

	return nil
}
