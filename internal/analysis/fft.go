package analysis

import (
	"math"
	"math/cmplx"
)

// FFT returns the discrete Fourier transform of data zero-padded to the
// next power of two, computed in place with an iterative radix-2 pass.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	x := make([]complex128, n)
	for i, v := range data {
		x[i] = complex(v, 0)
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		for k := 0; k < half; k++ {
			w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(size)))
			for start := 0; start < n; start += size {
				u := x[start+k]
				v := w * x[start+k+half]
				x[start+k] = u + v
				x[start+k+half] = u - v
			}
		}
	}

	return x
}

// PowerSpectrum returns |X_k|² for the non-negative frequency bins of the
// padded transform. Bin k is k/(n·dt) Hz for samples dt apart.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		re, im := real(fft[i]), imag(fft[i])
		ps[i] = re*re + im*im
	}
	return ps
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
