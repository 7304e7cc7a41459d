package session_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/export"
	"github.com/san-kum/pendsim/internal/session"
	"github.com/san-kum/pendsim/internal/viz"
)

var _ = Describe("Session", func() {
	var s *session.Session

	valid := config.Input{Angle: "10", Length: "1", TimeStep: "0.01", Steps: "1000"}

	BeforeEach(func() {
		var err error
		s, err = session.New("")
		Expect(err).NotTo(HaveOccurred())
	})

	It("defaults to rk4 and gets a unique id", func() {
		other, err := session.New("rk4")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Integrator).To(Equal("rk4"))
		Expect(s.ID).NotTo(BeEmpty())
		Expect(s.ID).NotTo(Equal(other.ID))
	})

	It("rejects unknown integrators", func() {
		_, err := session.New("leapfrog")
		Expect(err).To(MatchError(dynamo.ErrUnknownIntegrator))
	})

	Describe("Submit", func() {
		It("reports small-angle parameters and the trajectory", func() {
			report, err := s.Submit(valid)
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Amplitude).To(Equal("Amplitud: 0.1745 rad"))
			Expect(report.Frequency).To(Equal("Frecuencia angular: 3.1321 rad/s"))
			Expect(report.Solution).To(Equal("Ecuación solución: θ(t) = 0.1745 rad · cos(3.1321 rad/s · t)"))
			Expect(report.Trajectory).To(HaveLen(1000))
			Expect(report.Trajectory[999].T).To(BeNumerically("~", 10.0, 1e-9))
			Expect(report.Drift).To(BeNumerically("<", 1e-6))
			Expect(report.Metrics).To(HaveKey("amplitude"))

			Expect(s.Trajectory()).To(HaveLen(1000))
			Expect(s.Params()).NotTo(BeNil())
			Expect(s.Runs()).To(Equal(1))
		})

		It("collects every invalid field and keeps previous results", func() {
			_, err := s.Submit(valid)
			Expect(err).NotTo(HaveOccurred())
			before := s.Trajectory()

			_, err = s.Submit(config.Input{Angle: "abc", Length: "-1", TimeStep: "0.01", Steps: "0"})
			var verr *dynamo.ValidationError
			Expect(err).To(BeAssignableToTypeOf(verr))
			verr = err.(*dynamo.ValidationError)

			msg, ok := verr.Field(config.FieldTheta)
			Expect(ok).To(BeTrue())
			Expect(msg).To(Equal(config.MsgTheta))
			msg, _ = verr.Field(config.FieldLength)
			Expect(msg).To(Equal(config.MsgLength))
			msg, _ = verr.Field(config.FieldSteps)
			Expect(msg).To(Equal(config.MsgSteps))
			_, ok = verr.Field(config.FieldDt)
			Expect(ok).To(BeFalse())

			Expect(s.Trajectory()).To(Equal(before))
			Expect(s.Runs()).To(Equal(1))
		})

		It("runs a single step", func() {
			report, err := s.Submit(config.Input{Angle: "0", Length: "2", TimeStep: "0.05", Steps: "1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Trajectory).To(HaveLen(1))
			Expect(report.Trajectory[0]).To(Equal(dynamo.Sample{T: 0.05}))
			Expect(report.Params.Amplitude).To(BeZero())
		})
	})

	Describe("chart lifecycle", func() {
		It("creates the chart once and updates it in place", func() {
			Expect(s.Chart()).To(BeNil())

			_, err := s.Submit(valid)
			Expect(err).NotTo(HaveOccurred())
			chart := s.Chart()
			Expect(chart).NotTo(BeNil())
			Expect(chart.Revision()).To(Equal(0))

			_, err = s.Submit(config.Input{Angle: "30", Length: "2", TimeStep: "0.02", Steps: "200"})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Chart()).To(BeIdenticalTo(chart))
			Expect(chart.Revision()).To(Equal(1))
			Expect(chart.Len()).To(Equal(200))
			Expect(chart.Labels[199]).To(Equal("4.00"))
		})

		It("destroys the chart on reset and starts a new one afterwards", func() {
			_, err := s.Submit(valid)
			Expect(err).NotTo(HaveOccurred())
			old := s.Chart()

			s.Reset()
			Expect(old.Destroyed()).To(BeTrue())
			Expect(s.Chart()).To(BeNil())
			Expect(s.Trajectory()).To(BeEmpty())
			Expect(s.Params()).To(BeNil())

			_, err = s.Submit(valid)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Chart()).NotTo(BeIdenticalTo(old))
			Expect(s.Chart().Destroyed()).To(BeFalse())
		})

		It("tolerates reset with nothing displayed", func() {
			Expect(s.Reset).NotTo(Panic())
			Expect(s.Reset).NotTo(Panic())
		})
	})

	Describe("Download", func() {
		It("refuses before any run", func() {
			var buf bytes.Buffer
			Expect(s.Download(&buf)).To(MatchError(dynamo.ErrNoData))
			Expect(buf.Len()).To(BeZero())
			Expect(session.NoDataNotice).To(Equal("No hay datos para descargar. Realiza la simulación primero."))
		})

		It("refuses after reset", func() {
			_, err := s.Submit(valid)
			Expect(err).NotTo(HaveOccurred())
			s.Reset()

			var buf bytes.Buffer
			Expect(s.Download(&buf)).To(MatchError(dynamo.ErrNoData))
		})

		It("writes one row per sample after a header", func() {
			_, err := s.Submit(config.Input{Angle: "10", Length: "1", TimeStep: "0.01", Steps: "3"})
			Expect(err).NotTo(HaveOccurred())

			var buf bytes.Buffer
			Expect(s.Download(&buf)).To(Succeed())

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			Expect(lines).To(HaveLen(4))
			Expect(lines[0]).To(Equal(strings.Join(export.Header, ",")))
			Expect(lines[1]).To(HavePrefix("0.01,0.1744,"))
			Expect(lines[3]).To(HavePrefix("0.03,"))
		})

		It("is not affected by changes to the returned report", func() {
			report, err := s.Submit(config.Input{Angle: "10", Length: "1", TimeStep: "0.01", Steps: "3"})
			Expect(err).NotTo(HaveOccurred())

			var before bytes.Buffer
			Expect(s.Download(&before)).To(Succeed())

			report.Trajectory[0].Theta = 42
			traj := s.Trajectory()
			traj[1].Theta = 42

			var after bytes.Buffer
			Expect(s.Download(&after)).To(Succeed())
			Expect(after.String()).To(Equal(before.String()))
		})

		It("writes the default file name", func() {
			dir, err := os.MkdirTemp("", "pendsim")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)

			_, err = s.Submit(valid)
			Expect(err).NotTo(HaveOccurred())

			path, err := s.DownloadFile(filepath.Join(dir, export.DefaultFilename))
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Base(path)).To(Equal("simulacion_pendulo.csv"))

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Count(string(data), "\n")).To(Equal(1001))
		})
	})

	It("renders the live chart", func() {
		_, err := s.Submit(valid)
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(viz.NewASCII().Draw(&buf, s.Chart())).To(Succeed())
		Expect(buf.String()).To(ContainSubstring(viz.Title))
	})

	It("keeps energy bounded for large amplitudes", func() {
		report, err := s.Submit(config.Input{Angle: "170", Length: "1", TimeStep: "0.005", Steps: "2000"})
		Expect(err).NotTo(HaveOccurred())
		for _, sample := range report.Trajectory {
			Expect(math.Abs(sample.Theta)).To(BeNumerically("<=", 170*math.Pi/180+1e-3))
		}
	})
})

type counter struct{ n int }

func (c *counter) OnStep(dynamo.Sample) { c.n++ }

var _ = Describe("observers", func() {
	It("sees every sample of every run", func() {
		s, err := session.New("euler")
		Expect(err).NotTo(HaveOccurred())

		c := &counter{}
		s.Observe(c)

		_, err = s.Run(dynamo.Config{InitialAngleDeg: 5, Length: 1, TimeStep: 0.01, Steps: 40})
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Run(dynamo.Config{InitialAngleDeg: 5, Length: 1, TimeStep: 0.01, Steps: 10})
		Expect(err).NotTo(HaveOccurred())

		Expect(c.n).To(Equal(50))
	})

	It("does not run invalid typed configs", func() {
		s, err := session.New("")
		Expect(err).NotTo(HaveOccurred())
		c := &counter{}
		s.Observe(c)

		_, err = s.Run(dynamo.Config{InitialAngleDeg: 5, Length: 1, TimeStep: -0.01, Steps: 10})
		Expect(err).To(HaveOccurred())
		Expect(c.n).To(BeZero())
		Expect(s.Chart()).To(BeNil())
	})
})
