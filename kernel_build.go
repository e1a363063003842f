package pops

// BuildKernel resolves a KernelConfig into a concrete Kernel. stochastic
// selects between the sampling radial kernel and the deterministic
// probability-mass kernel for the ten radial distribution types;
// Uniform and DeterministicNeighbor ignore it (§4.4). Network kernels
// are built separately by the model constructor, since they need a
// *Network rather than a scale/shape pair.
func BuildKernel(cfg KernelConfig, stochastic bool, ewRes, nsRes, dispersalPercentage float64, rows, cols int, dispersers *Raster[int]) (Kernel, error) {
	kt, err := ParseKernelType(cfg.Type)
	if err != nil {
		return nil, err
	}
	dir, err := ParseCompassDirection(cfg.Direction)
	if err != nil {
		return nil, err
	}

	switch {
	case kt == KernelUniform:
		return NewUniformKernel(rows, cols), nil
	case kt == KernelDeterministicNeighbor:
		return NewDeterministicNeighborKernel(dir), nil
	case isRadialKernelType(kt):
		dist := NewRadialDistribution(kt, cfg.Scale, cfg.Shape)
		if stochastic {
			return NewRadialKernel(dist, dir, cfg.Kappa, ewRes, nsRes), nil
		}
		return NewDeterministicKernel(dist, ewRes, nsRes, dispersalPercentage, dispersers), nil
	default:
		return nil, &UnsupportedKernelError{Kernel: "BuildKernel", Type: kt}
	}
}
