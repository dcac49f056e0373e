package ami_test

import (
	"context"
	"fmt"

	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/ami"
)

func ExampleFindLatestImage() {
	id, err := ami.FindLatestImage(context.Background(), ami.Query{
		Region:       "us-east-1",
		ReleaseName:  "bionic",
		InstanceType: "hvm:ebs-ssd",
		Architecture: "amd64",
	})
	if err != nil {
		fmt.Println("lookup failed:", err)
		return
	}
	fmt.Println("us-east-1 ubuntu:bionic:", id)
}

func ExampleExtractImageID() {
	id, _ := ami.ExtractImageID(`<a href="x">ami-0abc</a>`)
	fmt.Println(id)
	// Output: ami-0abc
}
