package sim

// ProcessingTime estimates how many ticks a worker of the given flavor needs
// to dissolve every layer of the pearl. Each layer rounds up to a whole tick.
// The sum is 64-bit so that several near-maximal u32 layers cannot wrap.
func ProcessingTime(p Pearl, flavor string, table *AbilityTable) (uint64, error) {
	var total uint64
	for _, layer := range p.Layers {
		rate, err := table.Rate(flavor, layer.Color)
		if err != nil {
			return 0, err
		}
		total += ceilDiv(uint64(layer.Thickness), uint64(rate))
	}
	return total, nil
}

// ceilDiv requires d > 0.
func ceilDiv(n, d uint64) uint64 {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}
