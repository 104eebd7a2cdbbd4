package snaptrace

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// tracePath follows one camera ray through the scene. It returns the radiance carried
// back along the ray and whether the camera ray hit geometry.
func tracePath(scene *Scene, O, D r3.Vec, maxBounces int, rng *rand.Rand) (RGB, bool) {
	var radiance RGB
	throughput := RGB{1, 1, 1}

	for bounce := 0; bounce < maxBounces; bounce++ {
		hit, ok := scene.nearestHit(O, D, math.Inf(1))
		if !ok {
			if bounce == 0 {
				if Debug {
					logRay(Miss)
				}
				return scene.Background, false
			}
			if Debug {
				logRay(Escape)
			}
			return radiance.Add(throughput.Mul(scene.skyRadiance(D))), true
		}
		if bounce == 0 && Debug {
			logRay(Hit)
		}

		mat := hit.mat
		c := mat.colorFor(hit.color)
		if s := mat.Solid; s > 0 {
			radiance = radiance.Add(throughput.Mul(c).Scale(s))
			if s >= 1 {
				if Debug {
					logRay(Solid)
				}
				return radiance, true
			}
			throughput = throughput.Scale(1 - s)
		}

		P := r3.Add(O, r3.Scale(hit.t, D))
		// shade on the side the ray arrived from
		N := hit.N
		if r3.Dot(N, D) > 0 {
			N = r3.Scale(-1, N)
		}

		// --- specular/diffuse split by Schlick Fresnel ---
		if F := schlick(mat.f0(), -r3.Dot(D, N)); rng.Float64() < F {
			R := reflect3(D, N)
			if rough := mat.Roughness; rough > 0 {
				R = unitOr(r3.Add(R, r3.Scale(rough*rough, sampleUnitBall(rng))), N)
			}
			if r3.Dot(R, N) <= 0 {
				if Debug {
					logRay(Absorb)
				}
				return radiance, true
			}
			D = R
			if Debug {
				logRay(Reflect)
			}
		} else {
			D = sampleDiffuseDir(N, rng)
			throughput = throughput.Mul(c)
			if Debug {
				logRay(Diffuse)
			}
		}
		O = r3.Add(P, r3.Scale(bumpShift, N))
	}

	if Debug {
		logRay(BounceLimit)
	}
	return radiance, true
}

// castRays fills t.Buf and t.Alpha. Rows are handed out to Device.Workers goroutines;
// every row gets its own RNG derived from the seed, so the image does not depend on
// the number of workers.
func (t *PathTracer) castRays(scene *Scene, samples int) {
	workers := t.Device.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > t.H {
		workers = t.H
	}
	seed := t.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxBounces := t.MaxBounces
	if maxBounces <= 0 {
		maxBounces = MaxBounces
	}
	aspect := Real(t.W) / Real(t.H)
	invS := 1 / Real(samples)
	bgAlpha := clamp01(scene.BackgroundAlpha)

	var next, done int64
	step := int64(imax(1, t.H/10)) // ~10% steps
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				j := int(atomic.AddInt64(&next, 1) - 1)
				if j >= t.H {
					return
				}
				rng := rand.New(rand.NewSource(seed ^ int64(uint64(j+1)*0x9e3779b97f4a7c15)))
				for i := 0; i < t.W; i++ {
					var sum RGB
					hits := 0
					for s := 0; s < samples; s++ {
						fx := (Real(i)+rng.Float64())/Real(t.W) - 0.5
						fy := 0.5 - (Real(j)+rng.Float64())/Real(t.H)
						O, D := scene.Camera.Ray(fx, fy, aspect)
						c, hit := tracePath(scene, O, D, maxBounces, rng)
						sum = sum.Add(c)
						if hit {
							hits++
						}
					}
					base := t.idx(i, j, ChR)
					t.Buf[base+ChR] = sum.R * invS
					t.Buf[base+ChG] = sum.G * invS
					t.Buf[base+ChB] = sum.B * invS
					cov := Real(hits) * invS
					t.Alpha[j*t.W+i] = cov + (1-cov)*bgAlpha
				}
				if fin := atomic.AddInt64(&done, 1); fin%step == 0 {
					DebugLog("[PROGRESS] %.2f%%", Real(fin)*100/Real(t.H))
				}
			}
		}()
	}
	wg.Wait()
}
