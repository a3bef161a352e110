package experiment_test

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/san-kum/eulerlab/internal/dynamo"
	"github.com/san-kum/eulerlab/internal/experiment"
	"github.com/san-kum/eulerlab/internal/export"
)

const format = "svg"

var _ = Describe("Runner", func() {
	var (
		dir    string
		runner *experiment.Runner
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "eulerlab-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		runner = experiment.NewRunner(dir, format, zerolog.Nop())
	})

	file := func(name string) string {
		return filepath.Join(dir, name+"."+format)
	}

	written := func() []string {
		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return names
	}

	It("defaults the format to pdf", func() {
		Expect(experiment.NewRunner("", "", zerolog.Nop()).Format).To(Equal("pdf"))
	})

	Describe("SpringMotion", func() {
		It("writes the motion figure", func() {
			Expect(runner.SpringMotion(1, 0, 0.01, 1000)).To(Succeed())
			Expect(file(experiment.SpringMotionFile)).To(BeARegularFile())
		})

		It("overwrites an existing figure", func() {
			Expect(runner.SpringMotion(1, 0, 0.01, 100)).To(Succeed())
			Expect(runner.SpringMotion(0, 1, 0.01, 100)).To(Succeed())
			Expect(written()).To(ConsistOf(experiment.SpringMotionFile + "." + format))
		})
	})

	Describe("PlotError", func() {
		It("returns a small positive maximum error", func() {
			maxErr, err := runner.PlotError(1, 0, 0.01, 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(maxErr).To(BeNumerically(">", 0))
			Expect(maxErr).To(BeNumerically("<", 0.2))
			Expect(file(experiment.SpringErrorFile)).To(BeARegularFile())
		})

		It("is zero for the rest state", func() {
			maxErr, err := runner.PlotError(0, 0, 0.01, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(maxErr).To(BeZero())
		})
	})

	Describe("TruncationError", func() {
		It("shrinks roughly linearly with the step size", func() {
			sweep, err := runner.TruncationError(1, 0, 0.1, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(sweep.H).To(HaveLen(5))
			Expect(sweep.MaxError).To(HaveLen(5))

			for i := 1; i < len(sweep.H); i++ {
				Expect(sweep.H[i]).To(BeNumerically("~", sweep.H[i-1]/2, 1e-15))
				Expect(sweep.MaxError[i]).To(BeNumerically("<", sweep.MaxError[i-1]))
				ratio := sweep.MaxError[i-1] / sweep.MaxError[i]
				Expect(ratio).To(BeNumerically(">", 1.5))
				Expect(ratio).To(BeNumerically("<", 3))
			}
			Expect(sweep.Order).To(BeNumerically("~", 1.1, 0.2))

			Expect(file(experiment.TruncationErrorFile)).To(BeARegularFile())
			Expect(file(experiment.SpringErrorFile)).To(BeARegularFile())
		})

		It("rejects a non-positive final time", func() {
			_, err := runner.TruncationError(1, 0, 0.1, 0)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			Expect(written()).To(BeEmpty())
		})

		It("rejects a negative step size", func() {
			_, err := runner.TruncationError(1, 0, -0.1, 10)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})
	})

	Describe("energy figures", func() {
		It("writes the explicit energy figure", func() {
			Expect(runner.EnergyEvolution(1, 0, 0.01, 1000)).To(Succeed())
			Expect(file(experiment.ExplicitEnergyFile)).To(BeARegularFile())
		})

		It("writes the symplectic energy figure", func() {
			Expect(runner.SymplecticEnergyEvolution(1, 0, 0.01, 1000)).To(Succeed())
			Expect(file(experiment.SymplecticEnergyFile)).To(BeARegularFile())
		})

		It("writes both implicit comparison figures", func() {
			Expect(runner.ImplicitEuler(1, 0, 0.01, 1000)).To(Succeed())
			Expect(file(experiment.ImplicitEnergyFile)).To(BeARegularFile())
			Expect(file(experiment.ImplicitErrorFile)).To(BeARegularFile())
		})
	})

	Describe("PhaseSpace", func() {
		It("writes one figure per method", func() {
			Expect(runner.PhaseSpace(1, 0, 0.01, 1000)).To(Succeed())
			Expect(written()).To(ConsistOf(
				experiment.ImplicitPhaseFile+"."+format,
				experiment.ExplicitPhaseFile+"."+format,
				experiment.SymplecticPhaseFile+"."+format,
			))
		})
	})

	DescribeTable("degenerate inputs fail before writing",
		func(x0, v0, h float64, numSteps int, want error) {
			Expect(runner.SpringMotion(x0, v0, h, numSteps)).To(MatchError(want))
			Expect(runner.PhaseSpace(x0, v0, h, numSteps)).To(MatchError(want))
			Expect(written()).To(BeEmpty())
		},
		Entry("zero steps", 1.0, 0.0, 0.01, 0, dynamo.ErrParameterBounds),
		Entry("negative steps", 1.0, 0.0, 0.01, -5, dynamo.ErrParameterBounds),
		Entry("zero step size", 1.0, 0.0, 0.0, 100, dynamo.ErrParameterBounds),
		Entry("infinite step size", 1.0, 0.0, math.Inf(1), 100, dynamo.ErrParameterBounds),
		Entry("NaN position", math.NaN(), 0.0, 0.01, 100, dynamo.ErrInvalidState),
	)
})

var _ = Describe("Registry", func() {
	var (
		reg    *experiment.Registry
		runner *experiment.Runner
		dir    string
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "eulerlab-registry-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		reg = experiment.NewRegistry()
		runner = experiment.NewRunner(dir, format, zerolog.Nop())
	})

	It("lists experiments in a fixed order", func() {
		Expect(reg.Names()).To(Equal([]string{
			"spring", "error", "truncation", "energy", "implicit", "phase", "symplectic",
		}))
		Expect(reg.List()).To(HaveLen(7))
	})

	It("returns a copy of the names", func() {
		names := reg.Names()
		names[0] = "changed"
		Expect(reg.Names()[0]).To(Equal("spring"))
	})

	It("rejects unknown experiments", func() {
		_, err := reg.Get("rk4")
		Expect(err).To(MatchError(dynamo.ErrUnknownExperiment))
		Expect(reg.Run(runner, "rk4", experiment.Params{})).To(MatchError(dynamo.ErrUnknownExperiment))
	})

	It("writes the declared outputs of every experiment", func() {
		p := experiment.Params{X0: 1, V0: 0, H: 0.05, NumSteps: 200, FinalTime: 2}
		for _, e := range reg.List() {
			Expect(reg.Run(runner, e.Name, p)).To(Succeed(), e.Name)
			for _, out := range e.Outputs {
				Expect(filepath.Join(dir, out+"."+format)).To(BeARegularFile(), e.Name)
			}
		}
	})

	It("wraps routine failures with the experiment name", func() {
		err := reg.Run(runner, "spring", experiment.Params{X0: 1, H: 0.01})
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		Expect(err.Error()).To(ContainSubstring("experiment spring"))
	})
})

var _ = Describe("Figure colors", func() {
	var (
		runner  *experiment.Runner
		figures map[string]*export.Figure
	)

	BeforeEach(func() {
		figures = make(map[string]*export.Figure)
		runner = experiment.NewRunner("out", format, zerolog.Nop())
		runner.Write = func(fig *export.Figure, path string) error {
			figures[filepath.Base(path)] = fig
			return nil
		}
	})

	colors := func(name string) []color.Color {
		fig, ok := figures[name+"."+format]
		ExpectWithOffset(1, ok).To(BeTrue(), "no figure %s", name)
		out := make([]color.Color, 0, len(fig.Series))
		for _, s := range fig.Series {
			out = append(out, s.Color)
		}
		return out
	}

	It("draws position black and velocity blue", func() {
		Expect(runner.SpringMotion(1, 0, 0.01, 100)).To(Succeed())
		Expect(colors(experiment.SpringMotionFile)).To(Equal([]color.Color{export.Black, export.Blue}))
	})

	It("draws the x error black and the v error blue", func() {
		_, err := runner.PlotError(1, 0, 0.01, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(colors(experiment.SpringErrorFile)).To(Equal([]color.Color{export.Black, export.Blue}))
	})

	It("draws the truncation sweep as black markers on a line", func() {
		_, err := runner.TruncationError(1, 0, 0.1, 2)
		Expect(err).NotTo(HaveOccurred())
		fig := figures[experiment.TruncationErrorFile+"."+format]
		Expect(fig).NotTo(BeNil())
		Expect(fig.Series).To(HaveLen(1))
		Expect(fig.Series[0].Color).To(Equal(export.Black))
		Expect(fig.Series[0].Markers).To(BeTrue())
	})

	It("draws numerical energy black and analytical energy blue", func() {
		Expect(runner.EnergyEvolution(1, 0, 0.01, 100)).To(Succeed())
		Expect(runner.SymplecticEnergyEvolution(1, 0, 0.01, 100)).To(Succeed())
		for _, name := range []string{experiment.ExplicitEnergyFile, experiment.SymplecticEnergyFile} {
			Expect(colors(name)).To(Equal([]color.Color{export.Black, export.Blue}), name)
		}
	})

	It("draws implicit black and explicit blue", func() {
		Expect(runner.ImplicitEuler(1, 0, 0.01, 100)).To(Succeed())
		for _, name := range []string{experiment.ImplicitEnergyFile, experiment.ImplicitErrorFile} {
			fig := figures[name+"."+format]
			Expect(fig).NotTo(BeNil(), name)
			Expect(fig.Series[0].Label).To(Equal("implicit"))
			Expect(fig.Series[1].Label).To(Equal("explicit"))
			Expect(colors(name)).To(Equal([]color.Color{export.Black, export.Blue}), name)
		}
	})

	It("draws each phase portrait in its method's color", func() {
		Expect(runner.PhaseSpace(1, 0, 0.01, 100)).To(Succeed())
		Expect(colors(experiment.ImplicitPhaseFile)).To(Equal([]color.Color{export.Black}))
		Expect(colors(experiment.ExplicitPhaseFile)).To(Equal([]color.Color{export.Blue}))
		Expect(colors(experiment.SymplecticPhaseFile)).To(Equal([]color.Color{export.Red}))
	})

	It("keeps the three colors distinct", func() {
		Expect(export.Black).NotTo(Equal(export.Blue))
		Expect(export.Blue).NotTo(Equal(export.Red))
		Expect(export.Red).NotTo(Equal(export.Black))
	})
})
