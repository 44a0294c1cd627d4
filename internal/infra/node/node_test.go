package node_test

import (
	"firmgen-server/internal/infra/node"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Node", func() {
	ginkgo.It("describes the running instance", func() {
		info := node.Current()

		gomega.Expect(info.Hostname).NotTo(gomega.BeEmpty())
		gomega.Expect(info.Version).To(gomega.Equal(node.Version))
		gomega.Expect(info.CommitHash).To(gomega.Equal(node.CommitHash))
		_, err := uuid.Parse(info.ID)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.It("keeps the same identity across calls", func() {
		gomega.Expect(node.Current()).To(gomega.Equal(node.Current()))
	})
})
