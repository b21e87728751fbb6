package cable

import (
	"errors"

	"periph.io/x/d2xx"
)

// D2XXAvailable reports whether the FTDI D2XX driver is present on this host.
func D2XXAvailable() bool {
	return d2xx.Available
}

// DiscoverD2XX lists FTDI cables through the vendor D2XX driver. This finds
// cables that libusb cannot see because the FTDI driver owns them. Each
// device is opened briefly to read its IDs, so cables held by a running
// openocd are reported as errors and skipped.
func DiscoverD2XX() ([]Info, error) {
	if !d2xx.Available {
		return nil, nil
	}
	n, e := d2xx.CreateDeviceInfoList()
	if e != 0 {
		return nil, d2xxErr("CreateDeviceInfoList", e)
	}

	var found []Info
	var errs []error
	for i := 0; i < n; i++ {
		h, e := d2xx.Open(i)
		if e != 0 {
			errs = append(errs, d2xxErr("Open", e))
			continue
		}
		_, vid, pid, e := h.GetDeviceInfo()
		h.Close()
		if e != 0 {
			errs = append(errs, d2xxErr("GetDeviceInfo", e))
			continue
		}
		info, ok := Classify(vid, pid)
		if !ok {
			continue
		}
		info.Bus = -1
		info.Address = i
		found = append(found, info)
	}
	return found, errors.Join(errs...)
}

func d2xxErr(op string, e d2xx.Err) error {
	return errors.New("cable: d2xx " + op + ": " + e.String())
}
