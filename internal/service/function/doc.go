// Package function runs the dispatcher inside the AWS Lambda runtime.
package function
