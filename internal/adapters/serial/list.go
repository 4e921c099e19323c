package serial

import serialport "go.bug.st/serial"

// ListPorts enumerates the serial ports present on this machine.
func ListPorts() ([]string, error) {
	return serialport.GetPortsList()
}
