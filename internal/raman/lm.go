package raman

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	defaultMaxEvaluations = 10000
	defaultTolerance      = 1.49012e-8
)

// problem is a nonlinear least squares problem min |r(p)|^2
type problem struct {
	m, n int
	// residual writes r(p) into dst
	residual func(dst, p []float64)
	// jacobian writes dr/dp into the m x n matrix dst
	jacobian func(dst *mat.Dense, p []float64)
}

type lmSettings struct {
	MaxEvaluations int
	FTol           float64
	XTol           float64
}

type lmResult struct {
	X           []float64
	Cost        float64
	Evaluations int
	Converged   bool
}

// levenbergMarquardt minimizes the problem from p0 with Marquardt scaled
// damping. The step solves (JᵀJ + λ diag(JᵀJ)) δ = -Jᵀr by Cholesky.
// Convergence follows the MINPACK tests: a relative cost reduction below
// FTol, or a relative step below XTol.
func levenbergMarquardt(prob problem, p0 []float64, s lmSettings) lmResult {
	m, n := prob.m, prob.n
	p := append([]float64(nil), p0...)
	r := make([]float64, m)
	prob.residual(r, p)
	cost := floats.Dot(r, r)
	res := lmResult{X: p, Cost: cost, Evaluations: 1}
	if cost == 0 {
		res.Converged = true
		return res
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) {
		return res
	}

	jac := mat.NewDense(m, n, nil)
	var jtj mat.SymDense
	var chol mat.Cholesky
	grad := mat.NewVecDense(n, nil)
	step := mat.NewVecDense(n, nil)
	damped := mat.NewSymDense(n, nil)
	diag := make([]float64, n)
	trial := make([]float64, n)
	rTrial := make([]float64, m)

	lambda := -1.0
	nu := 2.0
	for res.Evaluations < s.MaxEvaluations {
		prob.jacobian(jac, p)
		jtj.SymOuterK(1, jac.T())
		grad.MulVec(jac.T(), mat.NewVecDense(m, r))
		if floats.Norm(grad.RawVector().Data, math.Inf(1)) == 0 {
			res.Converged = true
			break
		}
		for i := 0; i < n; i++ {
			diag[i] = math.Max(jtj.At(i, i), 1e-12)
		}
		if lambda < 0 {
			lambda = 1e-3 * floats.Max(diag)
		}

		improved := false
		for !improved && res.Evaluations < s.MaxEvaluations {
			if lambda > 1e300 {
				res.X, res.Cost = p, cost
				return res
			}
			damped.CopySym(&jtj)
			for i := 0; i < n; i++ {
				damped.SetSym(i, i, jtj.At(i, i)+lambda*diag[i])
			}
			if ok := chol.Factorize(damped); !ok {
				lambda *= nu
				nu *= 2
				continue
			}
			if err := chol.SolveVecTo(step, grad); err != nil {
				lambda *= nu
				nu *= 2
				continue
			}
			step.ScaleVec(-1, step)
			delta := step.RawVector().Data

			floats.AddTo(trial, p, delta)
			prob.residual(rTrial, trial)
			res.Evaluations++
			trialCost := floats.Dot(rTrial, rTrial)

			// predicted reduction of the linear model
			predicted := -floats.Dot(delta, grad.RawVector().Data)
			for i := 0; i < n; i++ {
				predicted += lambda * diag[i] * delta[i] * delta[i]
			}

			small := floats.Norm(delta, 2) <= s.XTol*(floats.Norm(p, 2)+s.XTol)
			if trialCost < cost && !math.IsNaN(trialCost) {
				actual := cost - trialCost
				rho := actual / predicted
				copy(p, trial)
				copy(r, rTrial)
				converged := (actual <= s.FTol*cost && predicted <= s.FTol*cost) || small
				cost = trialCost
				lambda *= math.Max(1.0/3, 1-math.Pow(2*rho-1, 3))
				nu = 2
				improved = true
				if converged || cost == 0 {
					res.Converged = true
				}
			} else {
				if small {
					res.Converged = true
					break
				}
				lambda *= nu
				nu *= 2
			}
		}
		if res.Converged {
			break
		}
	}

	res.X = p
	res.Cost = cost
	return res
}
