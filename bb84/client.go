package bb84

import "github.com/theapemachine/qreg/qlog"

// Client is the responding side: it picks a measurement basis per photon.
type Client struct {
	dice Source
}

func NewClient(src Source) *Client {
	if src == nil {
		src = newClockSource()
	}

	return &Client{dice: src}
}

func (c *Client) ChoosePolarizations(n int) []Basis {
	bases := make([]Basis, n)
	for i := range bases {
		bases[i] = Basis(roll(c.dice))
	}

	qlog.Debug("polarization", "bases", formatBases(bases))
	return bases
}
